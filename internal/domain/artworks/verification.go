package artworks

import (
	"time"

	"github.com/lib/pq"
)

type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictReview Verdict = "review"
	VerdictBlock  Verdict = "block"
)

// Verification is the outcome of one authenticity check. An artwork has at
// most one; absence means the check has not completed yet.
type Verification struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ArtworkID string `gorm:"type:uuid;not null;uniqueIndex:idx_verifications_artwork_id" json:"-"`

	ModelVersion string         `gorm:"not null" json:"model_version"`
	ScoreHuman   float64        `gorm:"not null" json:"score_human"`
	Verdict      Verdict        `gorm:"type:varchar(16);not null" json:"verdict"`
	Explanations pq.StringArray `gorm:"type:text[]" json:"explanations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
