package domain

import "errors"

// Gallery categories. Personals are the artist's own work, commissions are
// client pieces; they live in separate collections but share a shape.
const (
	CategoryPersonal   = "personal"
	CategoryCommission = "commission"
)

// GalleryItem is a single published artwork. PublicID is the remote asset
// handle at the image host; empty when the image was linked, not uploaded.
type GalleryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path"`
	PublicID    string `json:"public_id,omitempty"`
}

var ErrItemNotFound = errors.New("gallery item not found")
var ErrInvalidCategory = errors.New("invalid gallery category")
var ErrEmptySelection = errors.New("no items selected")
