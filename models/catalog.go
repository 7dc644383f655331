package models

import (
	"fmt"
	"strings"
)

// Normalized lesson method and plan values.
const (
	MethodPrivate = "Private"
	MethodZoom    = "Zoom"

	Plan30Min = "30min"
	Plan60Min = "60min"
)

// OfferingKey identifies one priced offering in the catalog.
type OfferingKey struct {
	Method string
	Plan   string
}

// PriceCatalogEntry describes what is billed for one offering: either a
// stable processor price ID, or an inline currency/amount/interval
// triple for ad-hoc pricing.
type PriceCatalogEntry struct {
	PriceID    string `json:"priceId,omitempty"`
	Currency   string `json:"currency,omitempty"`
	UnitAmount int64  `json:"unitAmount,omitempty"` // minor units
	Interval   string `json:"interval,omitempty"`   // billing interval, e.g. "week"
}

// IsInline reports whether the entry carries ad-hoc pricing instead of
// a price ID.
func (e PriceCatalogEntry) IsInline() bool {
	return e.PriceID == ""
}

// PriceCatalog is the fixed method/plan → offering table, built once at
// startup and read-only afterwards.
type PriceCatalog map[OfferingKey]PriceCatalogEntry

// AllOfferingKeys enumerates the closed set of valid offerings.
func AllOfferingKeys() []OfferingKey {
	return []OfferingKey{
		{Method: MethodPrivate, Plan: Plan30Min},
		{Method: MethodPrivate, Plan: Plan60Min},
		{Method: MethodZoom, Plan: Plan30Min},
		{Method: MethodZoom, Plan: Plan60Min},
	}
}

// Validate rejects incomplete or placeholder catalogs so a misconfigured
// deployment fails at boot rather than mid-checkout.
func (c PriceCatalog) Validate() error {
	for _, key := range AllOfferingKeys() {
		entry, ok := c[key]
		if !ok {
			return fmt.Errorf("price catalog missing entry for %s/%s", key.Method, key.Plan)
		}
		if entry.IsInline() {
			if entry.Currency == "" || entry.UnitAmount <= 0 || entry.Interval == "" {
				return fmt.Errorf("price catalog entry for %s/%s has incomplete inline pricing", key.Method, key.Plan)
			}
			continue
		}
		if !strings.HasPrefix(entry.PriceID, "price_") || strings.Contains(strings.ToLower(entry.PriceID), "xxx") {
			return fmt.Errorf("price catalog entry for %s/%s has placeholder price ID %q", key.Method, key.Plan, entry.PriceID)
		}
	}
	return nil
}
