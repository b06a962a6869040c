package orders

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is an end state of the payment lifecycle.
// Terminal orders never change again.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

type Order struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	BuyerID   *uint  `gorm:"index" json:"buyer_id,omitempty"`

	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"type:varchar(8);not null" json:"currency"`

	Status Status `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	// StripeSessionID is nil for orders settled on the simulated path.
	StripeSessionID *string `gorm:"uniqueIndex:idx_orders_stripe_session_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
