package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

const collectionSettings = "admin_config"

// SettingsRepository reads and writes the single site-settings document:
// the maintenance flag and the watermark text.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type settingsDoc struct {
	Maintenance   bool   `bson:"is_maintenance"`
	WatermarkText string `bson:"wm_text,omitempty"`
}

// Get returns the settings row, or defaults (maintenance off, no watermark)
// when the row has never been written.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc settingsDoc
	if err := r.col.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.SiteSettings{}, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &domain.SiteSettings{
		Maintenance:   doc.Maintenance,
		WatermarkText: doc.WatermarkText,
	}, nil
}

func (r *SettingsRepository) SetMaintenance(ctx context.Context, enabled bool) error {
	return r.set(ctx, bson.M{"is_maintenance": enabled})
}

func (r *SettingsRepository) SetWatermarkText(ctx context.Context, text string) error {
	return r.set(ctx, bson.M{"wm_text": text})
}

func (r *SettingsRepository) set(ctx context.Context, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{}, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
