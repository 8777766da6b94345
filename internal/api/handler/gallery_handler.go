package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

// GalleryHandler serves both gallery collections. Reads are public (the
// portfolio site consumes them); writes sit behind the session middleware.
type GalleryHandler struct {
	gallery ports.GalleryService
}

func NewGalleryHandler(gallery ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

type galleryItemRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"  validate:"required"`
	PublicID    string `json:"public_id"`
}

func (r galleryItemRequest) toDomain() *domain.GalleryItem {
	return &domain.GalleryItem{
		Title:       r.Title,
		Description: r.Description,
		ImagePath:   r.ImagePath,
		PublicID:    r.PublicID,
	}
}

// List returns all items in a category, newest first.
//
// @Summary      List gallery items
// @Tags         gallery
// @Produce      json
// @Success      200  {array}  domain.GalleryItem
// @Router       /api/personals [get]
func (h *GalleryHandler) List(category string) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := h.gallery.List(c.Request().Context(), category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, items)
	}
}

func (h *GalleryHandler) Get(category string) echo.HandlerFunc {
	return func(c echo.Context) error {
		item, err := h.gallery.Get(c.Request().Context(), category, c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, item)
	}
}

func (h *GalleryHandler) Create(category string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req galleryItemRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		created, err := h.gallery.Create(c.Request().Context(), category, req.toDomain())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func (h *GalleryHandler) Update(category string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req galleryItemRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		updated, err := h.gallery.Update(c.Request().Context(), category, c.Param("id"), req.toDomain())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, updated)
	}
}

func (h *GalleryHandler) Delete(category string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.gallery.Delete(c.Request().Context(), category, c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}
