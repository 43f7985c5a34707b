package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/apperr"
	"github.com/olzhasbek/qazcargo/internal/model"
	"github.com/olzhasbek/qazcargo/internal/pricing"
	"github.com/olzhasbek/qazcargo/internal/queue"
)

// RateStore is the read-only rate lookup the shipping endpoints need.
// *repository.RateRepo satisfies it; tests substitute fakes.
type RateStore interface {
	FindRoute(ctx context.Context, startCity, endCity string) (model.RouteRate, bool, error)
	FindBaseCosts(ctx context.Context) (model.BaseCost, bool, error)
	ListAllRoutes(ctx context.Context) ([]model.RouteRate, error)
	ListCities(ctx context.Context) ([]string, error)
}

// ShippingHandler serves the public calculator endpoints. Publish is the
// optional analytics hook; when nil no events are emitted.
type ShippingHandler struct {
	Rates   RateStore
	Engine  *pricing.Engine
	Publish func(ctx context.Context, ev queue.QuoteCalculatedEvent) error
}

func NewShippingHandler(rates RateStore, engine *pricing.Engine) *ShippingHandler {
	return &ShippingHandler{Rates: rates, Engine: engine}
}

// ----- DTOs -----

type calculateReq struct {
	Weight       float64  `json:"weight"`
	Length       *float64 `json:"length"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`
	StartCity    string   `json:"startCity"`
	EndCity      string   `json:"endCity"`
	ShippingType string   `json:"shippingType"` // composition | door
}

type calculateResp struct {
	FinalCost        int64  `json:"finalCost"`
	DeliveryEstimate string `json:"deliveryEstimate"`
}

type rateResp struct {
	PricePerKgComposition    float64 `json:"price_per_kg_composition"`
	PricePerKgDoor           float64 `json:"price_per_kg_door"`
	EstimatedDeliveryDaysMin int     `json:"estimated_delivery_days_min"`
	EstimatedDeliveryDaysMax int     `json:"estimated_delivery_days_max"`
}

// Cities returns the known city names in presentation order: primary
// cities pinned first, the rest under Russian collation.
func (h *ShippingHandler) Cities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cities, err := h.Rates.ListCities(ctx)
	if err != nil {
		return writeError(c, apperr.Store(err))
	}
	return c.JSON(http.StatusOK, pricing.OrderCities(cities))
}

// Rates returns the raw rate row for one lane, for calculator UIs that
// want to show per-kg prices before a weight is entered.
func (h *ShippingHandler) LaneRates(c echo.Context) error {
	start := c.QueryParam("startCity")
	end := c.QueryParam("endCity")
	if start == "" || end == "" {
		return writeError(c, apperr.Validation("startCity and endCity are required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	route, found, err := h.Rates.FindRoute(ctx, start, end)
	if err != nil {
		return writeError(c, apperr.Store(err))
	}
	if !found {
		return writeError(c, apperr.NotFound("no rates for this route"))
	}
	return c.JSON(http.StatusOK, rateResp{
		PricePerKgComposition:    route.PricePerKgComposition,
		PricePerKgDoor:           route.PricePerKgDoor,
		EstimatedDeliveryDaysMin: route.EstimatedDeliveryDaysMin,
		EstimatedDeliveryDaysMax: route.EstimatedDeliveryDaysMax,
	})
}

// Calculate prices a package on a lane and returns the rounded cost plus a
// delivery estimate. A successful quote also emits a best-effort analytics
// event; publish failures never affect the response.
func (h *ShippingHandler) Calculate(c echo.Context) error {
	var req calculateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Weight == 0 || req.StartCity == "" || req.EndCity == "" {
		return writeError(c, apperr.Validation("please fill in all required fields"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	route, found, err := h.Rates.FindRoute(ctx, req.StartCity, req.EndCity)
	if err != nil {
		return writeError(c, apperr.Store(err))
	}
	if !found {
		return writeError(c, apperr.NotFound("no shipping rates found for this route"))
	}

	base, found, err := h.Rates.FindBaseCosts(ctx)
	if err != nil {
		return writeError(c, apperr.Store(err))
	}
	if !found {
		return writeError(c, apperr.NotFound("base costs not found"))
	}

	quote, err := h.Engine.Quote(route, base, model.Package{
		WeightKg: req.Weight,
		LengthCm: req.Length,
		WidthCm:  req.Width,
		HeightCm: req.Height,
		Tier:     req.ShippingType,
	})
	if err != nil {
		return writeError(c, err)
	}

	if h.Publish != nil {
		ev := queue.QuoteCalculatedEvent{
			StartCity:        req.StartCity,
			EndCity:          req.EndCity,
			ShippingType:     req.ShippingType,
			WeightKg:         req.Weight,
			FinalCost:        quote.FinalCost,
			DeliveryEstimate: quote.DeliveryEstimate,
			CalculatedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusOK, calculateResp{
		FinalCost:        quote.FinalCost,
		DeliveryEstimate: quote.DeliveryEstimate,
	})
}

// ListRoutes returns every priced lane (admin rate-table view).
func (h *ShippingHandler) ListRoutes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	routes, err := h.Rates.ListAllRoutes(ctx)
	if err != nil {
		return writeError(c, apperr.Store(err))
	}
	out := make([]echo.Map, 0, len(routes))
	for _, rt := range routes {
		out = append(out, echo.Map{
			"startCity":                   rt.StartCity,
			"endCity":                     rt.EndCity,
			"price_per_kg_composition":    rt.PricePerKgComposition,
			"price_per_kg_door":           rt.PricePerKgDoor,
			"estimated_delivery_days_min": rt.EstimatedDeliveryDaysMin,
			"estimated_delivery_days_max": rt.EstimatedDeliveryDaysMax,
		})
	}
	return c.JSON(http.StatusOK, out)
}
