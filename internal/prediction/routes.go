package prediction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *Handler, pages *PageHandler) {
	r.Get("/", pages.Index)
	r.Post("/generate_prediction/", h.GeneratePrediction)
	r.Post("/generate_prediction", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/generate_prediction/", http.StatusTemporaryRedirect)
	})
}
