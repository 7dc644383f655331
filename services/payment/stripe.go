package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"go.uber.org/zap"

	"warrapay/models"
)

// StripeGateway implements Gateway against the Stripe API. The API key
// is set once in main from the injected configuration.
type StripeGateway struct {
	Logger *zap.Logger
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, profile models.CustomerProfile, metadata models.BookingMetadata) (string, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(profile.Name),
		Email: stripe.String(profile.Email),
		Phone: stripe.String(profile.PhoneNumber),
	}
	params.Context = ctx
	for k, v := range metadata.Map() {
		params.AddMetadata(k, v)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", wrapStripeErr("customer creation", err)
	}
	g.Logger.Info("created customer", zap.String("customerID", cust.ID), zap.String("email", profile.Email))
	return cust.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, customerID string, resolved *models.ResolvedBookingRequest, successURL, cancelURL string) (*CheckoutSession, error) {
	item := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(1)}
	if resolved.PriceSelection.IsInline() {
		item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(resolved.PriceSelection.Currency),
			UnitAmount: stripe.Int64(resolved.PriceSelection.UnitAmount),
			Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(resolved.PriceSelection.Interval),
			},
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("%s lesson (%s)", resolved.Metadata.Method, resolved.Metadata.Plan)),
			},
		}
	} else {
		item.Price = stripe.String(resolved.PriceSelection.PriceID)
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{item},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			TrialEnd: stripe.Int64(resolved.TrialEnd),
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range resolved.Metadata.Map() {
		params.AddMetadata(k, v)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, wrapStripeErr("checkout session creation", err)
	}
	g.Logger.Info("created checkout session",
		zap.String("sessionID", sess.ID),
		zap.String("customerID", customerID),
		zap.Int64("trialEnd", resolved.TrialEnd),
	)
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	ps, err := portalsession.New(params)
	if err != nil {
		if isResourceMissing(err) {
			return "", ErrCustomerNotFound
		}
		return "", wrapStripeErr("portal session creation", err)
	}
	return ps.URL, nil
}

func (g *StripeGateway) LookupSession(ctx context.Context, sessionID string) (string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		if isResourceMissing(err) {
			return "", ErrSessionNotFound
		}
		return "", wrapStripeErr("checkout session lookup", err)
	}
	if sess.Customer == nil {
		return "", ErrSessionNotFound
	}
	return sess.Customer.ID, nil
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing
}

func wrapStripeErr(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProcessorError{Op: op, Message: stripeErr.Msg, Err: err}
	}
	return &ProcessorError{Op: op, Message: err.Error(), Err: err}
}
