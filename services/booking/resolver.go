package booking

import (
	"strings"
	"time"

	"warrapay/models"
)

// Sentinels applied to optional booking fields the form left blank.
const (
	notProvided = "Not provided"
	notSelected = "Not selected"
)

// trialFloor keeps the trial end strictly in the future; the processor
// rejects a trial_end at or before the current instant.
const trialFloor = 60 * time.Second

// bookingDateLayouts are tried in order when parsing the form's date.
var bookingDateLayouts = []string{"2006-01-02", "02/01/2006", "2 January 2006"}

// RequestResolver turns a raw booking submission into a resolved request
// ready for the payment processor.
type RequestResolver interface {
	Resolve(payload models.BookingPayload, now time.Time) (*models.ResolvedBookingRequest, error)
}

// DefaultRequestResolver implements RequestResolver against a fixed
// price catalog. It is stateless and reentrant; the current time is
// always an explicit input, never read from a global clock.
type DefaultRequestResolver struct {
	Catalog      models.PriceCatalog
	ZoomMethodID string
}

// Validate checks that the contact fields needed to create a customer
// are present and non-blank.
func (r *DefaultRequestResolver) Validate(payload models.BookingPayload) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", payload.Name},
		{"email", payload.Email},
		{"phoneNumber", payload.PhoneNumber},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return &MissingFieldError{Field: field.name}
		}
	}
	return nil
}

// NormalizePlanAndMethod maps the free-form plan and method fields onto
// the closed catalog domain. It is total: any plan other than "30min"
// or "60min" falls back to "30min", and only the exact Zoom meeting
// identifier classifies as Zoom. Everything else is Private, the
// baseline tier, which makes it the safe default for unrecognized
// method strings.
func (r *DefaultRequestResolver) NormalizePlanAndMethod(rawPlan, rawMethod string) (plan, method string) {
	plan = strings.ToLower(strings.TrimSpace(rawPlan))
	if plan != models.Plan30Min && plan != models.Plan60Min {
		plan = models.Plan30Min
	}

	method = models.MethodPrivate
	if strings.TrimSpace(rawMethod) == r.ZoomMethodID {
		method = models.MethodZoom
	}
	return plan, method
}

// ResolvePrice looks up the catalog entry for a normalized method/plan
// pair. A missing entry is a configuration error surfaced as
// UnknownOfferingError; it never falls through to an ad-hoc price.
func (r *DefaultRequestResolver) ResolvePrice(method, plan string) (models.PriceCatalogEntry, error) {
	entry, ok := r.Catalog[models.OfferingKey{Method: method, Plan: plan}]
	if !ok {
		return models.PriceCatalogEntry{}, &UnknownOfferingError{Method: method, Plan: plan}
	}
	return entry, nil
}

// ComputeTrialEnd returns the subscription trial end in epoch seconds:
// start of day one day before the booking date, so the card is charged
// the day before the first lesson. A malformed or absent date falls
// back to today rather than blocking checkout. The result is floored at
// now+60s because the processor requires a strictly future trial end.
func ComputeTrialEnd(bookingDate string, now time.Time) int64 {
	day, ok := parseBookingDate(bookingDate, now.Location())
	if !ok {
		day = now
	}
	y, m, d := day.Date()
	candidate := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1).Unix()
	if floor := now.Add(trialFloor).Unix(); candidate < floor {
		return floor
	}
	return candidate
}

func parseBookingDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range bookingDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve composes validation, normalization, price resolution and
// trial computation, short-circuiting on the first failure.
func (r *DefaultRequestResolver) Resolve(payload models.BookingPayload, now time.Time) (*models.ResolvedBookingRequest, error) {
	if err := r.Validate(payload); err != nil {
		return nil, err
	}

	plan, method := r.NormalizePlanAndMethod(payload.Plan, payload.Method)
	entry, err := r.ResolvePrice(method, plan)
	if err != nil {
		return nil, err
	}

	return &models.ResolvedBookingRequest{
		CustomerProfile: models.CustomerProfile{
			Name:        strings.TrimSpace(payload.Name),
			Email:       strings.TrimSpace(payload.Email),
			PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
		},
		PriceSelection: entry,
		TrialEnd:       ComputeTrialEnd(payload.BookingDate, now),
		Metadata: models.BookingMetadata{
			Instrument:  orDefault(payload.Instrument, notProvided),
			BookingDate: orDefault(payload.BookingDate, notProvided),
			Weekday:     orDefault(payload.Weekday, notSelected),
			Time:        orDefault(payload.Time, notSelected),
			Method:      method,
			Plan:        plan,
		},
	}, nil
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
