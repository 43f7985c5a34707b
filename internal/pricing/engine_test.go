package pricing

import (
	"testing"

	"github.com/olzhasbek/qazcargo/internal/apperr"
	"github.com/olzhasbek/qazcargo/internal/model"
)

var testRoute = model.RouteRate{
	StartCity:                "Астана",
	EndCity:                  "Алматы",
	PricePerKgComposition:    100,
	PricePerKgDoor:           150,
	EstimatedDeliveryDaysMin: 2,
	EstimatedDeliveryDaysMax: 4,
}

var testBase = model.BaseCost{Composition: 1000, Door: 1500}

func fptr(v float64) *float64 { return &v }

func TestQuoteUnderThresholdIsBaseCost(t *testing.T) {
	e := NewEngine(20)

	// Any weight at or below the threshold prices at the base cost alone.
	for _, w := range []float64{0.5, 1, 15, 19.9, 20} {
		q, err := e.Quote(testRoute, testBase, model.Package{WeightKg: w, Tier: model.TierComposition})
		if err != nil {
			t.Fatalf("weight %v: unexpected error: %v", w, err)
		}
		if q.FinalCost != 1000 {
			t.Fatalf("weight %v: cost = %d, want 1000", w, q.FinalCost)
		}
	}
}

func TestQuoteOverThreshold(t *testing.T) {
	e := NewEngine(20)

	q, err := e.Quote(testRoute, testBase, model.Package{WeightKg: 30, Tier: model.TierComposition})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1000 + (30-20)*100
	if q.FinalCost != 2000 {
		t.Fatalf("cost = %d, want 2000", q.FinalCost)
	}
}

func TestQuoteVolumetricLosesToWeight(t *testing.T) {
	e := NewEngine(20)

	// 50*50*50/5000 = 25 kg volumetric, volumeCost = 2500 > costByWeight 1000.
	q, err := e.Quote(testRoute, testBase, model.Package{
		WeightKg: 10,
		LengthCm: fptr(50), WidthCm: fptr(50), HeightCm: fptr(50),
		Tier: model.TierComposition,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.FinalCost != 2500 {
		t.Fatalf("cost = %d, want 2500", q.FinalCost)
	}

	// 25*20*10/5000 = 1 kg volumetric, volumeCost = 100 < 1000, weight wins.
	q, err = e.Quote(testRoute, testBase, model.Package{
		WeightKg: 10,
		LengthCm: fptr(25), WidthCm: fptr(20), HeightCm: fptr(10),
		Tier: model.TierComposition,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.FinalCost != 1000 {
		t.Fatalf("cost = %d, want 1000", q.FinalCost)
	}
}

func TestQuoteDoorTierUsesDoorRates(t *testing.T) {
	e := NewEngine(20)

	q, err := e.Quote(testRoute, testBase, model.Package{WeightKg: 30, Tier: model.TierDoor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1500 + (30-20)*150
	if q.FinalCost != 3000 {
		t.Fatalf("cost = %d, want 3000", q.FinalCost)
	}
}

func TestQuoteRoundsToNearestUnit(t *testing.T) {
	e := NewEngine(20)
	route := testRoute
	route.PricePerKgComposition = 33.33

	q, err := e.Quote(route, testBase, model.Package{WeightKg: 20.5, Tier: model.TierComposition})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1000 + 0.5*33.33 = 1016.665 -> 1017
	if q.FinalCost != 1017 {
		t.Fatalf("cost = %d, want 1017", q.FinalCost)
	}
}

func TestQuoteDeliveryEstimate(t *testing.T) {
	e := NewEngine(20)

	q, err := e.Quote(testRoute, testBase, model.Package{WeightKg: 1, Tier: model.TierComposition})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.DeliveryEstimate != "от 2 до 4 дней" {
		t.Fatalf("estimate = %q, want %q", q.DeliveryEstimate, "от 2 до 4 дней")
	}
}

func TestQuoteDeterministic(t *testing.T) {
	e := NewEngine(25)
	pkg := model.Package{
		WeightKg: 42.7,
		LengthCm: fptr(120), WidthCm: fptr(60), HeightCm: fptr(45),
		Tier: model.TierDoor,
	}

	first, err := e.Quote(testRoute, testBase, pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Quote(testRoute, testBase, pkg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("quote changed between calls: %+v vs %+v", again, first)
		}
	}
}

func TestQuoteValidation(t *testing.T) {
	e := NewEngine(20)

	cases := []struct {
		name string
		pkg  model.Package
	}{
		{"zero weight", model.Package{WeightKg: 0, Tier: model.TierComposition}},
		{"negative weight", model.Package{WeightKg: -3, Tier: model.TierComposition}},
		{"unknown tier", model.Package{WeightKg: 5, Tier: "express"}},
		{"partial dimensions", model.Package{WeightKg: 5, LengthCm: fptr(10), Tier: model.TierDoor}},
		{"two dimensions", model.Package{WeightKg: 5, LengthCm: fptr(10), WidthCm: fptr(10), Tier: model.TierDoor}},
		{"negative dimension", model.Package{WeightKg: 5, LengthCm: fptr(10), WidthCm: fptr(10), HeightCm: fptr(-1), Tier: model.TierDoor}},
	}
	for _, tc := range cases {
		_, err := e.Quote(testRoute, testBase, tc.pkg)
		if err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("%s: kind = %v, want validation", tc.name, apperr.KindOf(err))
		}
	}
}

func TestNewEngineDefaultsThreshold(t *testing.T) {
	e := NewEngine(0)
	if e.ThresholdKg != DefaultWeightThresholdKg {
		t.Fatalf("threshold = %v, want %v", e.ThresholdKg, DefaultWeightThresholdKg)
	}
}
