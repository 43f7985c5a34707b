package model

// Service tiers offered on every lane. "composition" is delivery to the
// destination warehouse, "door" is delivery to the recipient's address.
const (
	TierComposition = "composition"
	TierDoor        = "door"
)

// RouteRate is a priced lane between two cities as stored in the
// `shipping_routes` table. Direction is significant: the (StartCity,
// EndCity) pair is looked up exactly as requested with no reverse fallback.
type RouteRate struct {
	StartCity                string  // shipping_routes.start_city
	EndCity                  string  // shipping_routes.end_city
	PricePerKgComposition    float64 // shipping_routes.price_per_kg_composition
	PricePerKgDoor           float64 // shipping_routes.price_per_kg_door
	EstimatedDeliveryDaysMin int     // shipping_routes.estimated_delivery_days_min
	EstimatedDeliveryDaysMax int     // shipping_routes.estimated_delivery_days_max
}

// BaseCost is the single global minimum charge per service tier, read from
// the one-row `base_costs` table. Whether base costs should ever vary per
// lane is a product decision; if it lands, the repository boundary
// (FindBaseCosts) is the only place that changes.
type BaseCost struct {
	Composition float64 // base_costs.base_cost_composition
	Door        float64 // base_costs.base_cost_door
}

// Package is the ephemeral input to a quote. It is never persisted.
// Dimensions are optional but all-or-none: either all three pointers are
// set or all three are nil.
type Package struct {
	WeightKg float64  // actual weight in kilograms, must be positive
	LengthCm *float64 // optional, centimeters
	WidthCm  *float64 // optional, centimeters
	HeightCm *float64 // optional, centimeters
	Tier     string   // TierComposition or TierDoor
}
