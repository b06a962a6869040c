package store

import (
	"context"
	"errors"

	"artmarket-backend/internal/domain/artworks"
	"artmarket-backend/internal/domain/orders"
	"artmarket-backend/internal/domain/users"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the durable record store behind the upload pipeline and the
// checkout lifecycle. Handlers receive it as a dependency; no package-level
// handle exists, so tests swap in the in-memory implementation freely.
type Store interface {
	CreateArtwork(ctx context.Context, a *artworks.Artwork) error
	AttachVerification(ctx context.Context, v *artworks.Verification) error
	ArtworkByID(ctx context.Context, id string) (*artworks.Artwork, error)
	// ListArtworks returns all artworks newest first, verification preloaded.
	ListArtworks(ctx context.Context) ([]artworks.Artwork, error)

	CreateOrder(ctx context.Context, o *orders.Order) error
	// SettleOrdersBySession moves every pending order carrying the given
	// provider session id into status and returns how many rows changed.
	// Orders already in a terminal state are left untouched, which makes
	// redelivered webhook events harmless.
	SettleOrdersBySession(ctx context.Context, sessionID string, status orders.Status) (int64, error)
	ListOrders(ctx context.Context) ([]orders.Order, error)

	CreateUser(ctx context.Context, u *users.User) error
	SaveUser(ctx context.Context, u *users.User) error
	UserByEmail(ctx context.Context, email string) (*users.User, error)
	UserByID(ctx context.Context, id uint) (*users.User, error)
	UserByGoogleSub(ctx context.Context, sub string) (*users.User, error)
	ListUsers(ctx context.Context) ([]users.User, error)
}
