package artworks

import (
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"artmarket-backend/internal/domain/artworks"
)

const (
	defaultPriceCents = 500
	minPriceCents     = 100
)

// Multipart fields bypass the JSON sanitizer middleware, so the upload
// handler scrubs its own text fields.
var textPolicy = bluemonday.StrictPolicy()

// parsePriceCents coerces a submitted price into minor units: absent or
// unparseable input means the default, anything below the floor is raised
// to the floor.
func parsePriceCents(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPriceCents
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return defaultPriceCents
	}
	if n < minPriceCents {
		return minPriceCents
	}
	return n
}

type VerificationDTO struct {
	ModelVersion string    `json:"model_version"`
	ScoreHuman   float64   `json:"score_human"`
	Verdict      string    `json:"verdict"`
	Explanations []string  `json:"explanations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArtworkDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	FileURL     string `json:"file_url"`

	PriceCents int64 `json:"price_cents"`
	OwnerID    *uint `json:"owner_id,omitempty"`

	Verification *VerificationDTO `json:"verification,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func toArtworkDTO(a *artworks.Artwork) ArtworkDTO {
	dto := ArtworkDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		FileURL:     "/files/" + a.StorageKey,
		PriceCents:  a.PriceCents,
		OwnerID:     a.OwnerID,
		CreatedAt:   a.CreatedAt,
	}
	if v := a.Verification; v != nil {
		dto.Verification = &VerificationDTO{
			ModelVersion: v.ModelVersion,
			ScoreHuman:   v.ScoreHuman,
			Verdict:      string(v.Verdict),
			Explanations: v.Explanations,
			CreatedAt:    v.CreatedAt,
		}
	}
	return dto
}
