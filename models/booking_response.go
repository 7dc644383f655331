package models

// CheckoutResponse is returned after a checkout session is created.
type CheckoutResponse struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	URL      string `json:"url,omitempty"`
}

// PortalResponse is returned for a customer portal session.
type PortalResponse struct {
	URL string `json:"url"`
}

// SessionLookupResponse maps a checkout session back to its customer.
type SessionLookupResponse struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
}
