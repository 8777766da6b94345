package ports

import (
	"context"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

// SettingsRepository reads and writes the single site-settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	SetMaintenance(ctx context.Context, enabled bool) error
	SetWatermarkText(ctx context.Context, text string) error
}
