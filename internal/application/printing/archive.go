package printing

import "context"

// ArchiveStorage stores rendered PDFs in object storage so exported
// documents survive regeneration and can be served without re-rendering.
type ArchiveStorage interface {
	// Upload stores the rendered document under the given key.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}
