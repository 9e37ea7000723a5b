package domain

// Tag labels actors; many-to-many, resolved through dedicated endpoints
// rather than embedded in every actor listing.
type Tag struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}
