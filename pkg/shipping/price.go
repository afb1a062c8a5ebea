package shipping

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"mercator-hq/shipquote/pkg/rules"
)

// Volume returns length × width × height in cubic centimeters. Each argument
// may be any value toFloat accepts, including numeric strings.
func Volume(length, width, height any) (float64, error) {
	l, err := toFloat(FieldLength, length)
	if err != nil {
		return 0, err
	}
	w, err := toFloat(FieldWidth, width)
	if err != nil {
		return 0, err
	}
	h, err := toFloat(FieldHeight, height)
	if err != nil {
		return 0, err
	}
	return l * w * h, nil
}

// Price computes the total shipping price for params.
//
// The subtotal is base_price + price_per_kg × weight + price_per_cubic_cm ×
// volume. The express multiplier and then the international multiplier are
// applied to the whole subtotal, so they compound. Any destination other than
// "international" is priced as national. The result is rounded to two decimals.
func Price(params Params, pricing rules.Pricing) (float64, error) {
	if len(params) == 0 {
		return 0, &ValidationError{Message: "request must be a non-empty object"}
	}

	length, width, height, weight, err := params.dimensions()
	if err != nil {
		return 0, err
	}
	if err := checkNonNegative(params); err != nil {
		return 0, err
	}

	volume, err := Volume(length, width, height)
	if err != nil {
		return 0, err
	}
	if !finite(volume) {
		return 0, errTooLarge()
	}

	total := pricing.BasePrice
	total += pricing.PricePerKg * weight
	total += pricing.PricePerCubicCm * volume

	if params.Express() {
		total *= pricing.ExpressMultiplier
	}
	if params.Destination() == DestinationInternational {
		total *= pricing.InternationalMultiplier
	}
	if !finite(total) {
		return 0, errTooLarge()
	}

	return round2(total), nil
}

// Breakdown is the per-component view of a price.
type Breakdown struct {
	BasePrice             float64 `json:"base_price"`
	WeightCost            float64 `json:"weight_cost"`
	VolumeCost            float64 `json:"volume_cost"`
	ExpressMultiplier     float64 `json:"express_multiplier"`
	DestinationMultiplier float64 `json:"destination_multiplier"`
}

// breakdown returns the components Price sums and multiplies. It assumes
// params already passed Price.
func breakdown(params Params, pricing rules.Pricing) (Breakdown, error) {
	length, width, height, weight, err := params.dimensions()
	if err != nil {
		return Breakdown{}, err
	}

	weightCost := pricing.PricePerKg * weight
	volumeCost := pricing.PricePerCubicCm * (length * width * height)
	if !finite(weightCost) || !finite(volumeCost) {
		return Breakdown{}, errTooLarge()
	}

	b := Breakdown{
		BasePrice:             pricing.BasePrice,
		WeightCost:            round2(weightCost),
		VolumeCost:            round2(volumeCost),
		ExpressMultiplier:     1.0,
		DestinationMultiplier: 1.0,
	}
	if params.Express() {
		b.ExpressMultiplier = pricing.ExpressMultiplier
	}
	if params.Destination() == DestinationInternational {
		b.DestinationMultiplier = pricing.InternationalMultiplier
	}
	return b, nil
}

func checkNonNegative(params Params) error {
	for _, f := range numericFields {
		v, err := params.Number(f)
		if err != nil {
			return err
		}
		if v < 0 {
			return &ValidationError{
				Field:   f,
				Message: fmt.Sprintf("negative values not allowed (%s=%s)", f, formatNumber(v)),
			}
		}
	}
	return nil
}

// errTooLarge reports measurements whose products overflow float64. Every
// caller of round2 must rule this out first: decimal cannot hold ±Inf or NaN.
func errTooLarge() error {
	return &ValidationError{Message: "package too large to price"}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// round2 rounds half away from zero to two decimal places. v must be finite.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
