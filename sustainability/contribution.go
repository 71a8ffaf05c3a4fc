package sustainability

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultEcoPoints is credited when a post does not declare its eco-points.
const DefaultEcoPoints = 50

var (
	// Defaults applied when a post does not declare the decimal metrics.
	DefaultWaterSaved    = decimal.NewFromFloat(2.5) // litres
	DefaultCarbonReduced = decimal.NewFromFloat(1.2) // kg CO2e

	ErrInvalidContribution = errors.New("invalid contribution")
	ErrUserNotFound        = errors.New("user not found")
)

// Contribution is the per-post tuple of sustainability metrics credited to
// the post owner's ledger.
type Contribution struct {
	EcoPoints     int
	WaterSaved    decimal.Decimal
	CarbonReduced decimal.Decimal
}

// ParseContribution validates the raw contribution fields of an inbound post
// request and fills in defaults for absent values. Validation happens here,
// before any post or ledger write, so a malformed value can never partially
// apply.
func ParseContribution(ecoPoints *int, waterSaved, carbonReduced string) (Contribution, error) {
	c := Contribution{
		EcoPoints:     DefaultEcoPoints,
		WaterSaved:    DefaultWaterSaved,
		CarbonReduced: DefaultCarbonReduced,
	}

	if ecoPoints != nil {
		if *ecoPoints < 0 {
			return Contribution{}, fmt.Errorf("%w: ecoPoints must not be negative", ErrInvalidContribution)
		}
		c.EcoPoints = *ecoPoints
	}

	if waterSaved != "" {
		d, err := decimal.NewFromString(waterSaved)
		if err != nil {
			return Contribution{}, fmt.Errorf("%w: waterSaved %q is not numeric", ErrInvalidContribution, waterSaved)
		}
		if d.IsNegative() {
			return Contribution{}, fmt.Errorf("%w: waterSaved must not be negative", ErrInvalidContribution)
		}
		c.WaterSaved = d
	}

	if carbonReduced != "" {
		d, err := decimal.NewFromString(carbonReduced)
		if err != nil {
			return Contribution{}, fmt.Errorf("%w: carbonReduced %q is not numeric", ErrInvalidContribution, carbonReduced)
		}
		if d.IsNegative() {
			return Contribution{}, fmt.Errorf("%w: carbonReduced must not be negative", ErrInvalidContribution)
		}
		c.CarbonReduced = d
	}

	return c, nil
}
