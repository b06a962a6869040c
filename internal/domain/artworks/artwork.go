package artworks

import (
	"time"
)

type Artwork struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Filename    string `gorm:"not null" json:"filename"`
	StorageKey  string `gorm:"not null;uniqueIndex:idx_artworks_storage_key" json:"storage_key"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	// PriceCents is in minor currency units, never below 100.
	PriceCents int64 `gorm:"not null" json:"price_cents"`

	OwnerID *uint `gorm:"index" json:"owner_id,omitempty"`

	Verification *Verification `gorm:"constraint:OnDelete:CASCADE;" json:"verification,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
