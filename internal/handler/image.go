package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/service"
)

// ImageHandler serves stored images.
type ImageHandler struct {
	images *service.ImageStore
}

func NewImageHandler(images *service.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// HandleServe returns the raw bytes of a stored image.
// GET /images/{key}
func (h *ImageHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.images.Open(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			http.NotFound(w, r)
			return
		}
		slog.Error("serve image", "key", r.PathValue("key"), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
