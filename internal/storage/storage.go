package storage

import "context"

const (
	CategoryHighlights = "highlights"
	CategoryThumbnails = "thumbnails"
)

// ClipStore publishes an extracted media file to durable storage and returns
// the path to persist on the highlight record. The local file is consumed by
// a successful Store call.
type ClipStore interface {
	Store(ctx context.Context, localPath, category string) (string, error)
}
