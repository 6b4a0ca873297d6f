package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/msomdec/folio-cms/internal/domain"
)

// multipartOverhead is the allowance for form fields on top of the file.
const multipartOverhead = 1 << 20

// form is a request payload decoded from multipart, urlencoded or JSON
// bodies. It remembers which fields were present so updates can apply only
// the supplied ones.
type form struct {
	values map[string]string
	upload *domain.Upload
}

// parseForm decodes the request body. fileField names the multipart file
// part to read; an empty name ignores files.
func parseForm(w http.ResponseWriter, r *http.Request, fileField string, maxUpload int64) (*form, error) {
	f := &form{values: make(map[string]string)}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			return nil, fmt.Errorf("%w: malformed or oversized multipart body", domain.ErrInvalidInput)
		}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				f.values[k] = v[0]
			}
		}
		if fileField != "" {
			up, err := readUpload(r, fileField)
			if err != nil {
				return nil, err
			}
			f.upload = up
		}

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, multipartOverhead)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: malformed form body", domain.ErrInvalidInput)
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				f.values[k] = v[0]
			}
		}

	default:
		r.Body = http.MaxBytesReader(w, r.Body, multipartOverhead)
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
		}
		for k, v := range raw {
			switch v := v.(type) {
			case string:
				f.values[k] = v
			case bool:
				f.values[k] = strconv.FormatBool(v)
			case float64:
				f.values[k] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return f, nil
}

func readUpload(r *http.Request, field string) (*domain.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: unreadable %s file", domain.ErrInvalidInput, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", field, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// get returns the value of a field, or "" when absent.
func (f *form) get(name string) string {
	return f.values[name]
}

// ptr returns the value of a field, or nil when absent.
func (f *form) ptr(name string) *string {
	v, ok := f.values[name]
	if !ok {
		return nil
	}
	return &v
}

// boolean parses a "true"/"false" style field, nil when absent.
func (f *form) boolean(name string) (*bool, error) {
	v, ok := f.values[name]
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, name)
	}
	return &b, nil
}
