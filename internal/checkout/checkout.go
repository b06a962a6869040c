package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"

	"artmarket-backend/internal/domain/orders"
	"artmarket-backend/internal/store"
)

// CreateResult is the outcome of starting a purchase. A simulated purchase
// settles immediately and has no redirect URL; a real one returns the
// provider's hosted payment page.
type CreateResult struct {
	Simulated bool
	OrderID   string
	URL       string
}

// Service drives the order lifecycle: pending on session creation,
// succeeded or failed once the provider reports the session's fate.
type Service struct {
	store      store.Store
	configured bool
	appURL     string
	currency   string

	// newSession is swapped out in tests; the default dials Stripe.
	newSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func New(st store.Store, configured bool, appURL, currency string) *Service {
	return &Service{
		store:      st,
		configured: configured,
		appURL:     appURL,
		currency:   currency,
		newSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			return checkoutsession.New(params)
		},
	}
}

// Create starts a purchase for one artwork. Without a configured provider
// the order settles immediately on the simulated path; otherwise a Stripe
// Checkout session is opened and the order stays pending until the webhook
// reports the outcome.
func (s *Service) Create(ctx context.Context, artworkID string, buyerID *uint) (CreateResult, error) {
	art, err := s.store.ArtworkByID(ctx, artworkID)
	if err != nil {
		return CreateResult{}, err
	}

	if !s.configured {
		o := &orders.Order{
			ID:          uuid.NewString(),
			ArtworkID:   art.ID,
			BuyerID:     buyerID,
			AmountCents: art.PriceCents,
			Currency:    s.currency,
			Status:      orders.StatusSucceeded,
		}
		if err := s.store.CreateOrder(ctx, o); err != nil {
			return CreateResult{}, fmt.Errorf("create order: %w", err)
		}
		return CreateResult{Simulated: true, OrderID: o.ID}, nil
	}

	name := art.Title
	if name == "" {
		name = art.Filename
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(s.appURL + "/checkout/success"),
		CancelURL:  stripe.String(s.appURL + "/checkout/canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.currency),
					UnitAmount: stripe.Int64(art.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
			},
		},

		ClientReferenceID: stripe.String(art.ID),
	}

	sess, err := s.newSession(params)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create checkout session: %w", err)
	}

	o := &orders.Order{
		ID:              uuid.NewString(),
		ArtworkID:       art.ID,
		BuyerID:         buyerID,
		AmountCents:     art.PriceCents,
		Currency:        s.currency,
		Status:          orders.StatusPending,
		StripeSessionID: stripe.String(sess.ID),
	}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return CreateResult{}, fmt.Errorf("create order: %w", err)
	}

	return CreateResult{OrderID: o.ID, URL: sess.URL}, nil
}

// Settle records the provider-reported fate of a checkout session. Matching
// is by session id only; an unknown or already-settled session is a no-op,
// so redelivered events cannot flip an order twice.
func (s *Service) Settle(ctx context.Context, sessionID string, status orders.Status) error {
	if sessionID == "" || !status.Terminal() {
		return nil
	}
	n, err := s.store.SettleOrdersBySession(ctx, sessionID, status)
	if err != nil {
		return fmt.Errorf("settle orders for session %s: %w", sessionID, err)
	}
	if n == 0 {
		log.Printf("ℹ️ No pending order for session %s (duplicate or unknown delivery)", sessionID)
	}
	return nil
}
