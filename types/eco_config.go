package types

import (
	"github.com/shopspring/decimal"
)

const (
	DEFAULT_ECO_POINTS = 50
)

var (
	DEFAULT_WATER_SAVED    = decimal.NewFromFloat(2.5) // litres
	DEFAULT_CARBON_REDUCED = decimal.NewFromFloat(1.2) // kg CO2e
)

type EcoScoring struct {
	CategoryPoints        map[string]int
	CategoryWaterSaved    map[string]decimal.Decimal
	CategoryCarbonReduced map[string]decimal.Decimal
	ConditionMultiplier   map[string]decimal.Decimal
}

// GetEcoScoring returns the per-category impact estimates used to prefill a
// post's declared contribution. Water figures are litres saved against buying
// the garment new, carbon figures kg CO2e avoided.
func GetEcoScoring() EcoScoring {
	return EcoScoring{
		CategoryPoints: map[string]int{
			"coat":      90,
			"jacket":    80,
			"dress":     70,
			"jeans":     75,
			"trousers":  60,
			"knitwear":  65,
			"shirt":     50,
			"tshirt":    40,
			"skirt":     50,
			"shoes":     60,
			"bag":       55,
			"accessory": 25,
		},
		CategoryWaterSaved: map[string]decimal.Decimal{
			"coat":      decimal.NewFromFloat(9.0),
			"jacket":    decimal.NewFromFloat(7.5),
			"dress":     decimal.NewFromFloat(6.0),
			"jeans":     decimal.NewFromFloat(8.0), // denim is the thirstiest fabric by far
			"trousers":  decimal.NewFromFloat(5.0),
			"knitwear":  decimal.NewFromFloat(4.5),
			"shirt":     decimal.NewFromFloat(3.5),
			"tshirt":    decimal.NewFromFloat(2.7),
			"skirt":     decimal.NewFromFloat(3.0),
			"shoes":     decimal.NewFromFloat(4.0),
			"bag":       decimal.NewFromFloat(3.0),
			"accessory": decimal.NewFromFloat(1.0),
		},
		CategoryCarbonReduced: map[string]decimal.Decimal{
			"coat":      decimal.NewFromFloat(4.5),
			"jacket":    decimal.NewFromFloat(3.8),
			"dress":     decimal.NewFromFloat(2.6),
			"jeans":     decimal.NewFromFloat(3.3),
			"trousers":  decimal.NewFromFloat(2.2),
			"knitwear":  decimal.NewFromFloat(2.4),
			"shirt":     decimal.NewFromFloat(1.6),
			"tshirt":    decimal.NewFromFloat(1.2),
			"skirt":     decimal.NewFromFloat(1.4),
			"shoes":     decimal.NewFromFloat(2.0),
			"bag":       decimal.NewFromFloat(1.5),
			"accessory": decimal.NewFromFloat(0.5),
		},
		ConditionMultiplier: map[string]decimal.Decimal{
			"like_new": decimal.NewFromFloat(1.2),
			"good":     decimal.NewFromFloat(1.0),
			"worn":     decimal.NewFromFloat(0.8),
		},
	}
}

// CalculateEcoContribution estimates a contribution for a garment category and
// condition. Unknown categories fall back to the flat defaults; unknown
// conditions count as "good".
func CalculateEcoContribution(category, condition string) (int, decimal.Decimal, decimal.Decimal) {
	scoring := GetEcoScoring()

	points, ok := scoring.CategoryPoints[category]
	if !ok {
		return DEFAULT_ECO_POINTS, DEFAULT_WATER_SAVED, DEFAULT_CARBON_REDUCED
	}
	water := scoring.CategoryWaterSaved[category]
	carbon := scoring.CategoryCarbonReduced[category]

	multiplier, ok := scoring.ConditionMultiplier[condition]
	if !ok {
		multiplier = decimal.NewFromInt(1)
	}

	scaledPoints := decimal.NewFromInt(int64(points)).Mul(multiplier).Round(0).IntPart()
	return int(scaledPoints),
		water.Mul(multiplier).Round(2),
		carbon.Mul(multiplier).Round(2)
}
