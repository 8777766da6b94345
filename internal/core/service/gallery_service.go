package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

const recentLimit = 5

// GalleryService implements CRUD over both gallery collections. Deletes
// hand the remote asset handle to the dispatcher so the image host cleanup
// happens off the request path.
type GalleryService struct {
	personals   ports.GalleryRepository
	commissions ports.GalleryRepository
	assets      ports.AssetDispatcher
	log         zerolog.Logger
}

func NewGalleryService(personals, commissions ports.GalleryRepository, assets ports.AssetDispatcher, log zerolog.Logger) *GalleryService {
	return &GalleryService{
		personals:   personals,
		commissions: commissions,
		assets:      assets,
		log:         log,
	}
}

func (s *GalleryService) repo(category string) (ports.GalleryRepository, error) {
	switch category {
	case domain.CategoryPersonal:
		return s.personals, nil
	case domain.CategoryCommission:
		return s.commissions, nil
	default:
		return nil, domain.ErrInvalidCategory
	}
}

func (s *GalleryService) List(ctx context.Context, category string) ([]domain.GalleryItem, error) {
	repo, err := s.repo(category)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s *GalleryService) Get(ctx context.Context, category, id string) (*domain.GalleryItem, error) {
	repo, err := s.repo(category)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (s *GalleryService) Create(ctx context.Context, category string, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	repo, err := s.repo(category)
	if err != nil {
		return nil, err
	}
	return repo.Create(ctx, item)
}

func (s *GalleryService) Update(ctx context.Context, category, id string, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	repo, err := s.repo(category)
	if err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, item)
}

func (s *GalleryService) Delete(ctx context.Context, category, id string) error {
	repo, err := s.repo(category)
	if err != nil {
		return err
	}

	item, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	if item.PublicID != "" {
		s.assets.Enqueue(ports.AssetJob{PublicID: item.PublicID, Category: category})
	}
	return nil
}

func (s *GalleryService) BulkDelete(ctx context.Context, category string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrEmptySelection
	}
	repo, err := s.repo(category)
	if err != nil {
		return 0, err
	}

	// Resolve first so asset handles survive the row deletion.
	items, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	count, err := repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	for _, item := range items {
		if item.PublicID != "" {
			s.assets.Enqueue(ports.AssetJob{PublicID: item.PublicID, Category: category})
		}
	}
	s.log.Info().Str("category", category).Int64("count", count).Msg("bulk delete completed")
	return count, nil
}

func (s *GalleryService) Stats(ctx context.Context) (*ports.GalleryStats, error) {
	stats := &ports.GalleryStats{}

	var err error
	if stats.Counts.Personals, err = s.personals.Count(ctx); err != nil {
		return nil, fmt.Errorf("count personals: %w", err)
	}
	if stats.Counts.Commissions, err = s.commissions.Count(ctx); err != nil {
		return nil, fmt.Errorf("count commissions: %w", err)
	}
	if stats.Recent.Personals, err = s.personals.Recent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent personals: %w", err)
	}
	if stats.Recent.Commissions, err = s.commissions.Recent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent commissions: %w", err)
	}
	return stats, nil
}
