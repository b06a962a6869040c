package store

import (
	"context"
	"errors"
	"fmt"

	"artmarket-backend/internal/domain/artworks"
	"artmarket-backend/internal/domain/orders"
	"artmarket-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func OpenGorm(dsn string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&artworks.Artwork{},
		&artworks.Verification{},
		&orders.Order{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Gorm{db: db}, nil
}

func (s *Gorm) CreateArtwork(ctx context.Context, a *artworks.Artwork) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Gorm) AttachVerification(ctx context.Context, v *artworks.Verification) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *Gorm) ArtworkByID(ctx context.Context, id string) (*artworks.Artwork, error) {
	var a artworks.Artwork
	err := s.db.WithContext(ctx).Preload("Verification").First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Gorm) ListArtworks(ctx context.Context) ([]artworks.Artwork, error) {
	var out []artworks.Artwork
	err := s.db.WithContext(ctx).
		Preload("Verification").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Gorm) CreateOrder(ctx context.Context, o *orders.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *Gorm) SettleOrdersBySession(ctx context.Context, sessionID string, status orders.Status) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&orders.Order{}).
		Where("stripe_session_id = ? AND status = ?", sessionID, orders.StatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *Gorm) ListOrders(ctx context.Context) ([]orders.Order, error) {
	var out []orders.Order
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Gorm) CreateUser(ctx context.Context, u *users.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Gorm) SaveUser(ctx context.Context, u *users.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *Gorm) UserByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) UserByID(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) UserByGoogleSub(ctx context.Context, sub string) (*users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("google_sub = ?", sub).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) ListUsers(ctx context.Context) ([]users.User, error) {
	var out []users.User
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
