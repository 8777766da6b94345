package ports

import (
	"context"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

// GalleryRepository persists one gallery collection (personals or
// commissions). List returns newest first.
type GalleryRepository interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
	FindByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	Create(ctx context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error)
	Update(ctx context.Context, id string, item *domain.GalleryItem) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Recent returns up to limit items, newest first.
	Recent(ctx context.Context, limit int64) ([]domain.GalleryItem, error)
	// FindByIDs resolves a bulk selection; unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.GalleryItem, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
