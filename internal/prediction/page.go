package prediction

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/Vovarama1992/life-prediction-api/internal/logger"
)

// NotFoundError means the configured static page does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("static page %s not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// PageHandler serves the single HTML page. The file is read on every request
// and written out byte for byte.
type PageHandler struct {
	indexPath string
	log       *logger.Logger
}

func NewPageHandler(indexPath string, log *logger.Logger) *PageHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{indexPath: indexPath, log: log}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	body, err := h.readIndex()
	if err != nil {
		h.log.Error("serve index failed", "path", h.indexPath, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *PageHandler) readIndex() ([]byte, error) {
	body, err := os.ReadFile(h.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: h.indexPath, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", h.indexPath, err)
	}
	return body, nil
}
