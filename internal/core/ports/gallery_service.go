package ports

import (
	"context"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

// GalleryStats is the admin dashboard summary: totals plus the most recent
// items per collection.
type GalleryStats struct {
	Counts struct {
		Personals   int64 `json:"personals"`
		Commissions int64 `json:"commissions"`
	} `json:"counts"`
	Recent struct {
		Personals   []domain.GalleryItem `json:"personals"`
		Commissions []domain.GalleryItem `json:"commissions"`
	} `json:"recent"`
}

type GalleryService interface {
	List(ctx context.Context, category string) ([]domain.GalleryItem, error)
	Get(ctx context.Context, category, id string) (*domain.GalleryItem, error)
	Create(ctx context.Context, category string, item *domain.GalleryItem) (*domain.GalleryItem, error)
	Update(ctx context.Context, category, id string, item *domain.GalleryItem) (*domain.GalleryItem, error)
	// Delete removes the row and schedules remote asset cleanup when the
	// item carries a public ID.
	Delete(ctx context.Context, category, id string) error
	BulkDelete(ctx context.Context, category string, ids []string) (int64, error)
	Stats(ctx context.Context) (*GalleryStats, error)
}
