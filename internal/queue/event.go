// Package queue defines message payloads exchanged over the message broker.
package queue

// QuoteCalculatedEvent is published after every successful shipping-cost
// calculation. It carries enough for analytics and demand reporting
// without a query back to the primary database.
type QuoteCalculatedEvent struct {
	StartCity        string  `json:"start_city"`
	EndCity          string  `json:"end_city"`
	ShippingType     string  `json:"shipping_type"`
	WeightKg         float64 `json:"weight_kg"`
	FinalCost        int64   `json:"final_cost"`
	DeliveryEstimate string  `json:"delivery_estimate"`
	CalculatedAt     string  `json:"calculated_at"`
}
