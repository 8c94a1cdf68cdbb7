// Package budget computes deterministic trip cost estimates from static
// tier-and-city rate tables. No I/O.
package budget

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Recognized budget tiers
const (
	TierBudget = "budget"
	TierMid    = "mid"
	TierLuxe   = "luxe"
)

// generalCity is the cost row used for cities without a table entry
const generalCity = "General"

// bufferRate is the contingency added on top of the category subtotal
const bufferRate = 0.10

// accommodationRates are per-day-per-traveler, tier-and-city keyed
var accommodationRates = map[string]map[string]float64{
	"Dubai":     {TierBudget: 100, TierMid: 150, TierLuxe: 250},
	"Abu Dhabi": {TierBudget: 50, TierMid: 120, TierLuxe: 260},
	"Sharjah":   {TierBudget: 50, TierMid: 120, TierLuxe: 260},
	generalCity: {TierBudget: 50, TierMid: 120, TierLuxe: 260},
}

// Per-day-per-traveler, tier-only rates
var (
	transportRates  = map[string]float64{TierBudget: 12, TierMid: 25, TierLuxe: 60}
	mealRates       = map[string]float64{TierBudget: 18, TierMid: 35, TierLuxe: 80}
	attractionRates = map[string]float64{TierBudget: 10, TierMid: 25, TierLuxe: 50}
)

// Quote is the cost breakdown for one trip. Never stored.
type Quote struct {
	City          string  `json:"city"`
	Days          int     `json:"days"`
	Travelers     int     `json:"travelers"`
	Tier          string  `json:"tier"`
	Currency      string  `json:"currency"`
	Accommodation float64 `json:"accommodation"`
	Transport     float64 `json:"transport"`
	Meals         float64 `json:"meals"`
	Attractions   float64 `json:"attractions"`
	Buffer        float64 `json:"buffer_10pct"`
	Total         float64 `json:"total"`
	Note          string  `json:"assumptions_note"`
}

// ValidationError reports an invalid estimator argument. The offending field
// is carried so the composed answer can ask the user to correct it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// input carries the estimator arguments through validation
type input struct {
	Days      int    `validate:"gt=0"`
	Travelers int    `validate:"gte=1"`
	Tier      string `validate:"oneof=budget mid luxe"`
}

var validate = validator.New()

// Estimate computes a quote. City silently substitutes the General row when
// unknown; days, travelers, and tier are validated strictly and never
// coerced to defaults.
func Estimate(city string, days, travelers int, tier string) (*Quote, error) {
	if err := validate.Struct(input{Days: days, Travelers: travelers, Tier: tier}); err != nil {
		return nil, asValidationError(err)
	}

	rates, ok := accommodationRates[city]
	if !ok {
		rates = accommodationRates[generalCity]
	}

	scale := float64(days * travelers)
	accommodation := rates[tier] * scale
	transport := transportRates[tier] * scale
	meals := mealRates[tier] * scale
	attractions := attractionRates[tier] * scale

	subtotal := accommodation + transport + meals + attractions
	total := math.Ceil(subtotal * (1 + bufferRate))

	return &Quote{
		City:          city,
		Days:          days,
		Travelers:     travelers,
		Tier:          tier,
		Currency:      quoteCurrency(),
		Accommodation: accommodation,
		Transport:     transport,
		Meals:         meals,
		Attractions:   attractions,
		Buffer:        total - subtotal,
		Total:         total,
		Note:          "Rough averages; adjust to season and availability.",
	}, nil
}

func asValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch fe.Field() {
		case "Days":
			return &ValidationError{Field: "days", Reason: "must be a positive integer"}
		case "Travelers":
			return &ValidationError{Field: "travelers", Reason: "must be at least 1"}
		case "Tier":
			return &ValidationError{Field: "tier", Reason: "must be one of budget|mid|luxe"}
		}
	}
	return err
}

// quoteCurrency resolves the currency for the UAE region, with a fixed
// fallback should the region table ever miss.
func quoteCurrency() string {
	region, err := language.ParseRegion("AE")
	if err != nil {
		return "AED"
	}
	cur, ok := currency.FromRegion(region)
	if !ok {
		return "AED"
	}
	return cur.String()
}
