package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/service"
)

// resourceHandler serves the add/get/update/delete routes of one content
// type on top of a service.Resource.
type resourceHandler[T any, P any, D any] struct {
	res *service.Resource[T, P]
	// kind is the lower-case JSON key of a single record, e.g. "blog".
	kind string
	// label is used in messages, e.g. "Blog".
	label     string
	fileField string
	maxUpload int64

	decodeCreate func(r *http.Request, f *form) (*T, error)
	decodePatch  func(f *form) (P, error)
	toDTO        func(*T) D
}

// HandleCreate processes POST /api/{kind}/add.
func (h *resourceHandler[T, P, D]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, h.fileField, h.maxUpload)
	if err != nil {
		h.writeServiceError(w, "add", err)
		return
	}
	entity, err := h.decodeCreate(r, f)
	if err != nil {
		h.writeServiceError(w, "add", err)
		return
	}

	created, err := h.res.Create(r.Context(), entity, f.upload)
	if err != nil {
		h.writeServiceError(w, "add", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": h.label + " created successfully",
		h.kind:    h.toDTO(created),
	})
}

// HandleList processes GET /api/{kind}/get?page=&limit=.
// Missing or non-numeric values fall back to the defaults.
func (h *resourceHandler[T, P, D]) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r.URL.Query().Get("page"))
	limit := queryInt(r.URL.Query().Get("limit"))

	result, err := h.res.List(r.Context(), domain.NewPageRequest(page, limit))
	if err != nil {
		h.writeServiceError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, pageDTO(h.kind+"s", result, h.toDTO))
}

// HandleGet processes GET /api/{kind}/get/{id}. The record is wrapped in the
// same envelope as a list.
func (h *resourceHandler[T, P, D]) HandleGet(w http.ResponseWriter, r *http.Request) {
	entity, err := h.res.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, pageDTO(h.kind+"s", domain.SinglePage(*entity), h.toDTO))
}

// HandleUpdate processes PATCH /api/{kind}/update/{id}.
func (h *resourceHandler[T, P, D]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, h.fileField, h.maxUpload)
	if err != nil {
		h.writeServiceError(w, "update", err)
		return
	}
	patch, err := h.decodePatch(f)
	if err != nil {
		h.writeServiceError(w, "update", err)
		return
	}

	updated, err := h.res.Update(r.Context(), r.PathValue("id"), patch, f.upload)
	if err != nil {
		h.writeServiceError(w, "update", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": h.label + " updated successfully",
		h.kind:    h.toDTO(updated),
	})
}

// HandleDelete processes DELETE /api/{kind}/delete/{id}.
func (h *resourceHandler[T, P, D]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.res.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, "delete", err)
		return
	}
	writeMessage(w, http.StatusOK, h.label+" deleted successfully")
}

func (h *resourceHandler[T, P, D]) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, detail(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, h.label+" not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, detail(err, domain.ErrConflict))
	default:
		slog.Error(op+" "+h.kind, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// detail returns the text following sentinel in a wrapped error, e.g.
// "blog title is required" from "create blog: invalid input: blog title is required".
func detail(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// queryInt reads the leading integer of s, so "2.5" and "3abc" yield 2 and 3.
// Values too large for int saturate; anything without leading digits is 0.
func queryInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}
