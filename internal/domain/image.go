package domain

import "context"

// ImagePathPrefix is the public path under which stored files are served.
// Records keep only "images/<key>"; the absolute URL is built at read time.
const ImagePathPrefix = "images/"

// Upload is a file received with a create or update request.
type Upload struct {
	Filename    string // Original upload filename
	ContentType string // Detected from the file bytes
	Data        []byte
}

// FileStore abstracts raw file byte storage.
// Implementations store on the local filesystem or as SQLite BLOBs.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
