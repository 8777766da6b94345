package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/core/ports"
	"github.com/aldodev/portfolio-api/internal/infrastructure/config"
)

// AdminHandler serves the admin dashboard API: stats, watermark config, the
// maintenance toggle, bulk delete, and the client-side upload config.
type AdminHandler struct {
	gallery    ports.GalleryService
	settings   ports.SettingsRepository
	cloudinary config.CloudinaryConfig
}

func NewAdminHandler(gallery ports.GalleryService, settings ports.SettingsRepository, cloudinary config.CloudinaryConfig) *AdminHandler {
	return &AdminHandler{gallery: gallery, settings: settings, cloudinary: cloudinary}
}

// Stats returns collection counts and the five most recent items each.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.gallery.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// GetWatermark is public: the upload pipeline reads it before stamping.
func (h *AdminHandler) GetWatermark(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"wm_text": settings.WatermarkText})
}

type watermarkRequest struct {
	WatermarkText string `json:"wm_text"`
}

func (h *AdminHandler) UpdateWatermark(c echo.Context) error {
	var req watermarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.settings.SetWatermarkText(c.Request().Context(), req.WatermarkText); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// GetMaintenance reports the current maintenance flag.
func (h *AdminHandler) GetMaintenance(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"maintenance": settings.Maintenance})
}

type maintenanceRequest struct {
	Maintenance bool `json:"maintenance"`
}

// UpdateMaintenance toggles the flag. The route sits under /api/auth so an
// admin can still reach it while maintenance is active.
func (h *AdminHandler) UpdateMaintenance(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.settings.SetMaintenance(c.Request().Context(), req.Maintenance); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

type bulkDeleteRequest struct {
	IDs      []string `json:"ids"      validate:"required,min=1"`
	Category string   `json:"category" validate:"required,oneof=personal commission"`
}

type bulkDeleteResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

// BulkDelete removes a selection of items and their remote assets.
func (h *AdminHandler) BulkDelete(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.gallery.BulkDelete(c.Request().Context(), req.Category, req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkDeleteResponse{Success: true, Count: count})
}

// UploadConfig hands the admin UI what it needs to upload straight to the
// image host. The API secret never leaves the server.
func (h *AdminHandler) UploadConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"cloudName":    h.cloudinary.CloudName,
		"uploadPreset": h.cloudinary.UploadPreset,
		"apiKey":       h.cloudinary.APIKey,
	})
}
