package domain

// SiteSettings is the single site-wide configuration row. Maintenance gates
// public traffic; WatermarkText is stamped onto uploads by the image
// pipeline collaborator.
type SiteSettings struct {
	Maintenance   bool   `json:"maintenance"`
	WatermarkText string `json:"wm_text"`
}
