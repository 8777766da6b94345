package ports

import "context"

// AssetStore deletes images at the remote host once their gallery rows are
// gone. Upload and transformation happen client-side against the host
// directly and are not part of this service.
type AssetStore interface {
	Destroy(ctx context.Context, publicID string) error
}

// AssetJob is one pending remote deletion, routed through the dispatcher so
// bulk deletes do not block the request.
type AssetJob struct {
	PublicID string
	Category string
}

// AssetDispatcher enqueues asset jobs for background processing.
type AssetDispatcher interface {
	Enqueue(job AssetJob)
}
