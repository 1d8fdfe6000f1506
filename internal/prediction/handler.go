package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/life-prediction-api/internal/ai"
	"github.com/Vovarama1992/life-prediction-api/internal/logger"
	"github.com/Vovarama1992/life-prediction-api/internal/middleware"
)

const maxProfileBytes = 1 << 20

type Handler struct {
	svc Service
	log *logger.Logger
}

func NewHandler(svc Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log}
}

type predictionResponse struct {
	Prediction string `json:"prediction"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Detail []FieldError `json:"detail"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// GeneratePrediction answers 200 with either {"prediction"} or {"error"};
// only a malformed request gets a non-2xx status.
func (h *Handler) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	log := h.log.With("request_id", middleware.RequestIDFromContext(r.Context()))

	profile, err := DecodeProfile(http.MaxBytesReader(w, r.Body, maxProfileBytes))
	if err != nil {
		var vErr *ValidationError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &vErr):
			log.Info("profile rejected", "error", vErr.Error())
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: vErr.Fields})
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, detailResponse{Detail: "Request body too large"})
		default:
			log.Warn("read request body failed", "error", err)
			writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "Could not read request body"})
		}
		return
	}

	// An issued completion call is not aborted by a client disconnect.
	ctx := context.WithoutCancel(r.Context())

	prediction, err := h.svc.Predict(ctx, profile)
	if err != nil {
		kind := ""
		var upErr *ai.UpstreamError
		if errors.As(err, &upErr) {
			kind = string(upErr.Kind)
		}
		log.Warn("prediction failed", "kind", kind, "error", err)
		writeJSON(w, http.StatusOK, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, predictionResponse{Prediction: prediction})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
