package payment

import (
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v76"
)

func TestIsResourceMissing(t *testing.T) {
	missing := &stripe.Error{Code: stripe.ErrorCodeResourceMissing, Msg: "No such customer"}
	if !isResourceMissing(missing) {
		t.Fatal("resource_missing error not recognized")
	}

	declined := &stripe.Error{Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined"}
	if isResourceMissing(declined) {
		t.Fatal("card_declined misclassified as resource_missing")
	}
	if isResourceMissing(errors.New("network down")) {
		t.Fatal("plain error misclassified as resource_missing")
	}
}

func TestWrapStripeErr(t *testing.T) {
	cause := &stripe.Error{Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined"}
	err := wrapStripeErr("checkout session creation", cause)

	var procErr *ProcessorError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessorError, got %T", err)
	}
	if procErr.Op != "checkout session creation" || procErr.Message != "Your card was declined" {
		t.Fatalf("unexpected ProcessorError: %+v", procErr)
	}
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) || stripeErr != cause {
		t.Fatal("wrapped error does not unwrap to the Stripe error")
	}
}

func TestWrapStripeErr_PlainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := wrapStripeErr("customer creation", cause)

	var procErr *ProcessorError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessorError, got %T", err)
	}
	if procErr.Message != "connection reset" {
		t.Fatalf("message = %q", procErr.Message)
	}
}
