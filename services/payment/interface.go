package payment

import (
	"context"

	"warrapay/models"
)

// CheckoutSession is the subset of the processor's session object the
// handlers care about.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway is the narrow surface this service needs from the payment
// processor: customer creation, hosted checkout, the customer portal
// and session lookup. Everything behind it is a pass-through call with
// no logic of its own.
type Gateway interface {
	CreateCustomer(ctx context.Context, profile models.CustomerProfile, metadata models.BookingMetadata) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID string, resolved *models.ResolvedBookingRequest, successURL, cancelURL string) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	LookupSession(ctx context.Context, sessionID string) (string, error)
}
