// Package pricing computes shipping quotes. The engine is a pure function
// of its inputs: rate lookup lives behind the repository, clock and
// randomness are never consulted, so identical inputs always produce an
// identical quote.
package pricing

import (
	"fmt"
	"math"

	"github.com/olzhasbek/qazcargo/internal/apperr"
	"github.com/olzhasbek/qazcargo/internal/model"
)

// VolumetricDivisor converts a dimension product in cubic centimeters into
// a volumetric weight in kilograms. 5000 is the industry-standard divisor.
const VolumetricDivisor = 5000.0

// DefaultWeightThresholdKg is the weight up to which the base cost alone
// applies. 25 kg is a product decision; the config layer may override it.
const DefaultWeightThresholdKg = 25.0

// Engine holds the pricing constants. A zero threshold is replaced with
// the default so a forgotten config value cannot price every parcel by
// weight from zero.
type Engine struct {
	ThresholdKg float64
}

func NewEngine(thresholdKg float64) *Engine {
	if thresholdKg <= 0 {
		thresholdKg = DefaultWeightThresholdKg
	}
	return &Engine{ThresholdKg: thresholdKg}
}

// Quote is the result of a successful calculation. FinalCost is rounded to
// the nearest integer currency unit.
type Quote struct {
	FinalCost        int64
	DeliveryEstimate string
}

// Quote prices a package on the given lane.
//
// Cost by weight is the tier's base cost up to the threshold, then grows by
// pricePerKg for every kilogram above it. When dimensions are supplied the
// volumetric cost (l*w*h/5000 * pricePerKg) competes with the weight cost
// and the larger of the two wins.
func (e *Engine) Quote(route model.RouteRate, base model.BaseCost, pkg model.Package) (Quote, error) {
	if err := validatePackage(pkg); err != nil {
		return Quote{}, err
	}

	var pricePerKg, baseCost float64
	switch pkg.Tier {
	case model.TierComposition:
		pricePerKg = route.PricePerKgComposition
		baseCost = base.Composition
	case model.TierDoor:
		pricePerKg = route.PricePerKgDoor
		baseCost = base.Door
	}

	costByWeight := baseCost
	if pkg.WeightKg > e.ThresholdKg {
		costByWeight = baseCost + (pkg.WeightKg-e.ThresholdKg)*pricePerKg
	}

	finalCost := costByWeight
	if pkg.LengthCm != nil && pkg.WidthCm != nil && pkg.HeightCm != nil {
		volumeWeight := (*pkg.LengthCm * *pkg.WidthCm * *pkg.HeightCm) / VolumetricDivisor
		volumeCost := volumeWeight * pricePerKg
		finalCost = math.Max(volumeCost, costByWeight)
	}

	return Quote{
		FinalCost:        int64(math.Round(finalCost)),
		DeliveryEstimate: fmt.Sprintf("от %d до %d дней", route.EstimatedDeliveryDaysMin, route.EstimatedDeliveryDaysMax),
	}, nil
}

func validatePackage(pkg model.Package) error {
	if pkg.WeightKg <= 0 {
		return apperr.Validation("weight must be a positive number")
	}
	if pkg.Tier != model.TierComposition && pkg.Tier != model.TierDoor {
		return apperr.Validation("unknown shipping type")
	}

	dims := []*float64{pkg.LengthCm, pkg.WidthCm, pkg.HeightCm}
	set := 0
	for _, d := range dims {
		if d != nil {
			set++
		}
	}
	if set != 0 && set != 3 {
		return apperr.Validation("length, width and height must be provided together")
	}
	for _, d := range dims {
		if d != nil && *d <= 0 {
			return apperr.Validation("dimensions must be positive numbers")
		}
	}
	return nil
}
