package models

// BookingPayload is the raw booking form submission as sent by the site.
type BookingPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Instrument  string `json:"instrument,omitempty"`
	Weekday     string `json:"weekday,omitempty"`
	Time        string `json:"time,omitempty"`
	BookingDate string `json:"bookingDate,omitempty"`
	Plan        string `json:"plan,omitempty"`
	Method      string `json:"method,omitempty"`
}

// CustomerProfile carries the contact fields the processor needs to
// create a customer.
type CustomerProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// BookingMetadata is the lesson context attached to the processor
// objects so the studio can see what was booked.
type BookingMetadata struct {
	Instrument  string `json:"instrument"`
	BookingDate string `json:"bookingDate"`
	Weekday     string `json:"weekday"`
	Time        string `json:"time"`
	Method      string `json:"method"`
	Plan        string `json:"plan"`
}

// Map flattens the metadata into processor key/value form.
func (m BookingMetadata) Map() map[string]string {
	return map[string]string{
		"instrument":  m.Instrument,
		"bookingDate": m.BookingDate,
		"weekday":     m.Weekday,
		"time":        m.Time,
		"method":      m.Method,
		"plan":        m.Plan,
	}
}

// ResolvedBookingRequest is the output of the booking resolver: a fully
// validated, priced request with its trial end. It is built once per
// request, handed to the payment gateway, and never persisted.
type ResolvedBookingRequest struct {
	CustomerProfile CustomerProfile
	PriceSelection  PriceCatalogEntry
	TrialEnd        int64 // epoch seconds; always at least 60s in the future
	Metadata        BookingMetadata
}
