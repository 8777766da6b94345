package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

type stubGalleryRepo struct {
	items  map[string]domain.GalleryItem
	nextID int
}

func newStubGalleryRepo() *stubGalleryRepo {
	return &stubGalleryRepo{items: make(map[string]domain.GalleryItem)}
}

func (r *stubGalleryRepo) List(context.Context) ([]domain.GalleryItem, error) {
	out := make([]domain.GalleryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubGalleryRepo) FindByID(_ context.Context, id string) (*domain.GalleryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (r *stubGalleryRepo) Create(_ context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	r.nextID++
	created := *item
	created.ID = strconv.Itoa(r.nextID)
	r.items[created.ID] = created
	return &created, nil
}

func (r *stubGalleryRepo) Update(_ context.Context, id string, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	if _, ok := r.items[id]; !ok {
		return nil, domain.ErrItemNotFound
	}
	updated := *item
	updated.ID = id
	r.items[id] = updated
	return &updated, nil
}

func (r *stubGalleryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubGalleryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubGalleryRepo) Recent(_ context.Context, limit int64) ([]domain.GalleryItem, error) {
	items, _ := r.List(context.Background())
	if int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *stubGalleryRepo) FindByIDs(_ context.Context, ids []string) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubGalleryRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type recordingDispatcher struct {
	jobs []ports.AssetJob
}

func (d *recordingDispatcher) Enqueue(job ports.AssetJob) {
	d.jobs = append(d.jobs, job)
}

func newTestGalleryService() (*GalleryService, *stubGalleryRepo, *stubGalleryRepo, *recordingDispatcher) {
	personals := newStubGalleryRepo()
	commissions := newStubGalleryRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewGalleryService(personals, commissions, dispatcher, zerolog.Nop())
	return svc, personals, commissions, dispatcher
}

func TestGalleryService_InvalidCategory(t *testing.T) {
	svc, _, _, _ := newTestGalleryService()

	if _, err := svc.List(context.Background(), "sketches"); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestGalleryService_CreateRoutesByCategory(t *testing.T) {
	svc, personals, commissions, _ := newTestGalleryService()

	if _, err := svc.Create(context.Background(), domain.CategoryPersonal, &domain.GalleryItem{Title: "dawn", ImagePath: "/img/dawn.webp"}); err != nil {
		t.Fatalf("create personal: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.CategoryCommission, &domain.GalleryItem{Title: "portrait", ImagePath: "/img/portrait.webp"}); err != nil {
		t.Fatalf("create commission: %v", err)
	}

	if len(personals.items) != 1 || len(commissions.items) != 1 {
		t.Fatalf("items landed in wrong collections: %d personals, %d commissions", len(personals.items), len(commissions.items))
	}
}

func TestGalleryService_DeleteEnqueuesAssetCleanup(t *testing.T) {
	svc, _, _, dispatcher := newTestGalleryService()

	created, _ := svc.Create(context.Background(), domain.CategoryPersonal, &domain.GalleryItem{
		Title: "dawn", ImagePath: "/img/dawn.webp", PublicID: "portfolio/dawn",
	})
	if err := svc.Delete(context.Background(), domain.CategoryPersonal, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(dispatcher.jobs) != 1 || dispatcher.jobs[0].PublicID != "portfolio/dawn" {
		t.Fatalf("expected one asset job, got %v", dispatcher.jobs)
	}
}

func TestGalleryService_DeleteWithoutPublicIDSkipsCleanup(t *testing.T) {
	svc, _, _, dispatcher := newTestGalleryService()

	created, _ := svc.Create(context.Background(), domain.CategoryPersonal, &domain.GalleryItem{
		Title: "linked", ImagePath: "https://elsewhere/img.png",
	})
	if err := svc.Delete(context.Background(), domain.CategoryPersonal, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(dispatcher.jobs) != 0 {
		t.Fatalf("expected no asset jobs, got %v", dispatcher.jobs)
	}
}

func TestGalleryService_BulkDelete(t *testing.T) {
	svc, _, _, dispatcher := newTestGalleryService()

	var ids []string
	for i := 0; i < 3; i++ {
		created, _ := svc.Create(context.Background(), domain.CategoryCommission, &domain.GalleryItem{
			Title: "piece", ImagePath: "/img/p.webp", PublicID: "portfolio/p" + strconv.Itoa(i),
		})
		ids = append(ids, created.ID)
	}

	count, err := svc.BulkDelete(context.Background(), domain.CategoryCommission, ids)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 deleted, got %d", count)
	}
	if len(dispatcher.jobs) != 3 {
		t.Fatalf("expected 3 asset jobs, got %d", len(dispatcher.jobs))
	}
}

func TestGalleryService_BulkDeleteEmptySelection(t *testing.T) {
	svc, _, _, _ := newTestGalleryService()

	if _, err := svc.BulkDelete(context.Background(), domain.CategoryPersonal, nil); !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestGalleryService_Stats(t *testing.T) {
	svc, _, _, _ := newTestGalleryService()

	for i := 0; i < 7; i++ {
		_, _ = svc.Create(context.Background(), domain.CategoryPersonal, &domain.GalleryItem{Title: "p", ImagePath: "/p.webp"})
	}
	_, _ = svc.Create(context.Background(), domain.CategoryCommission, &domain.GalleryItem{Title: "c", ImagePath: "/c.webp"})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Counts.Personals != 7 || stats.Counts.Commissions != 1 {
		t.Fatalf("unexpected counts: %+v", stats.Counts)
	}
	if len(stats.Recent.Personals) != 5 {
		t.Fatalf("expected recent capped at 5, got %d", len(stats.Recent.Personals))
	}
}
