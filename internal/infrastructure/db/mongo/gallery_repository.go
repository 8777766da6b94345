package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

const (
	collectionPersonals   = "personals"
	collectionCommissions = "commission_works"
)

// GalleryRepository persists one gallery collection. Personals and
// commissions share a shape, so the same repository serves both with a
// different backing collection.
type GalleryRepository struct {
	col *mongo.Collection
}

func NewPersonalRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionPersonals)}
}

func NewCommissionRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionCommissions)}
}

type galleryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	ImagePath   string             `bson:"image_path"`
	PublicID    string             `bson:"public_id,omitempty"`
}

func (d galleryDoc) toDomain() domain.GalleryItem {
	return domain.GalleryItem{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		ImagePath:   d.ImagePath,
		PublicID:    d.PublicID,
	}
}

func fromDomain(item *domain.GalleryItem) galleryDoc {
	return galleryDoc{
		Title:       item.Title,
		Description: item.Description,
		ImagePath:   item.ImagePath,
		PublicID:    item.PublicID,
	}
}

// newestFirst sorts by _id descending; ObjectIDs are time-prefixed.
var newestFirst = bson.D{{Key: "_id", Value: -1}}

func (r *GalleryRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return r.find(ctx, options.Find().SetSort(newestFirst))
}

func (r *GalleryRepository) Recent(ctx context.Context, limit int64) ([]domain.GalleryItem, error) {
	return r.find(ctx, options.Find().SetSort(newestFirst).SetLimit(limit))
}

func (r *GalleryRepository) find(ctx context.Context, opts *options.FindOptions) ([]domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer cur.Close(ctx)

	items := []domain.GalleryItem{}
	for cur.Next(ctx) {
		var doc galleryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode gallery item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery: %w", err)
	}
	return items, nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	var doc galleryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomain(item))
	if err != nil {
		return nil, fmt.Errorf("insert gallery item: %w", err)
	}

	created := *item
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id string, item *domain.GalleryItem) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fromDomain(item)})
	if err != nil {
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrItemNotFound
	}

	updated := *item
	updated.ID = id
	return &updated, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *GalleryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count gallery: %w", err)
	}
	return n, nil
}

func (r *GalleryRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find gallery items: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.GalleryItem
	for cur.Next(ctx) {
		var doc galleryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode gallery item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *GalleryRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("bulk delete gallery: %w", err)
	}
	return res.DeletedCount, nil
}

// parseObjectIDs drops malformed IDs instead of failing the whole batch.
func parseObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
