package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/model"
	"github.com/olzhasbek/qazcargo/internal/pricing"
	"github.com/olzhasbek/qazcargo/internal/queue"
)

type fakeRateStore struct {
	routes map[string]model.RouteRate
	base   *model.BaseCost
}

func routeKey(start, end string) string { return start + "|" + end }

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{
		routes: map[string]model.RouteRate{
			routeKey("Астана", "Алматы"): {
				StartCity: "Астана", EndCity: "Алматы",
				PricePerKgComposition: 100, PricePerKgDoor: 150,
				EstimatedDeliveryDaysMin: 2, EstimatedDeliveryDaysMax: 4,
			},
			routeKey("Алматы", "Шымкент"): {
				StartCity: "Алматы", EndCity: "Шымкент",
				PricePerKgComposition: 90, PricePerKgDoor: 140,
				EstimatedDeliveryDaysMin: 1, EstimatedDeliveryDaysMax: 3,
			},
		},
		base: &model.BaseCost{Composition: 1000, Door: 1500},
	}
}

func (f *fakeRateStore) FindRoute(_ context.Context, start, end string) (model.RouteRate, bool, error) {
	rt, ok := f.routes[routeKey(start, end)]
	return rt, ok, nil
}

func (f *fakeRateStore) FindBaseCosts(_ context.Context) (model.BaseCost, bool, error) {
	if f.base == nil {
		return model.BaseCost{}, false, nil
	}
	return *f.base, true, nil
}

func (f *fakeRateStore) ListAllRoutes(_ context.Context) ([]model.RouteRate, error) {
	var out []model.RouteRate
	for _, rt := range f.routes {
		out = append(out, rt)
	}
	return out, nil
}

func (f *fakeRateStore) ListCities(_ context.Context) ([]string, error) {
	return []string{"Шымкент", "Астана", "Алматы"}, nil
}

// downRateStore simulates an unreachable database on every call.
type downRateStore struct{}

var errStoreDown = errors.New("dial tcp 10.0.0.5:3306: connect: connection refused")

func (downRateStore) FindRoute(context.Context, string, string) (model.RouteRate, bool, error) {
	return model.RouteRate{}, false, errStoreDown
}
func (downRateStore) FindBaseCosts(context.Context) (model.BaseCost, bool, error) {
	return model.BaseCost{}, false, errStoreDown
}
func (downRateStore) ListAllRoutes(context.Context) ([]model.RouteRate, error) {
	return nil, errStoreDown
}
func (downRateStore) ListCities(context.Context) ([]string, error) {
	return nil, errStoreDown
}

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestCalculateHappyPath(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	rec, c := postJSON(e, "/v1/calculate",
		`{"weight":30,"startCity":"Астана","endCity":"Алматы","shippingType":"composition"}`)
	if err := h.Calculate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp calculateResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 1000 + (30-25)*100
	if resp.FinalCost != 1500 {
		t.Fatalf("finalCost = %d, want 1500", resp.FinalCost)
	}
	if resp.DeliveryEstimate != "от 2 до 4 дней" {
		t.Fatalf("estimate = %q", resp.DeliveryEstimate)
	}
}

func TestCalculateMissingFields(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	for _, body := range []string{
		`{"startCity":"Астана","endCity":"Алматы","shippingType":"composition"}`,
		`{"weight":10,"endCity":"Алматы","shippingType":"composition"}`,
		`{"weight":10,"startCity":"Астана","shippingType":"composition"}`,
	} {
		rec, c := postJSON(e, "/v1/calculate", body)
		if err := h.Calculate(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 for body %s", rec.Code, body)
		}
	}
}

func TestCalculateUnknownRoute(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	// Direction matters: the reverse of a seeded lane is not priced.
	rec, c := postJSON(e, "/v1/calculate",
		`{"weight":10,"startCity":"Алматы","endCity":"Астана","shippingType":"door"}`)
	if err := h.Calculate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no shipping rates found for this route") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCalculatePublishesEvent(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	events := make(chan queue.QuoteCalculatedEvent, 1)
	h.Publish = func(_ context.Context, ev queue.QuoteCalculatedEvent) error {
		events <- ev
		return nil
	}

	_, c := postJSON(e, "/v1/calculate",
		`{"weight":15,"startCity":"Астана","endCity":"Алматы","shippingType":"composition"}`)
	if err := h.Calculate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-events:
		if ev.FinalCost != 1000 || ev.StartCity != "Астана" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

func TestStoreFailureMapsToGeneric500(t *testing.T) {
	h := NewShippingHandler(downRateStore{}, pricing.NewEngine(25))
	e := echo.New()

	rec, c := postJSON(e, "/v1/calculate",
		`{"weight":30,"startCity":"Астана","endCity":"Алматы","shippingType":"composition"}`)
	if err := h.Calculate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// The body stays generic; persistence detail goes to the log only.
	if !strings.Contains(rec.Body.String(), "internal error") {
		t.Fatalf("body = %s, want generic message", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("body leaks store detail: %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/cities", nil)
	rec = httptest.NewRecorder()
	if err := h.Cities(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCitiesOrdered(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/cities", nil)
	rec := httptest.NewRecorder()
	if err := h.Cities(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cities []string
	if err := json.Unmarshal(rec.Body.Bytes(), &cities); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"Астана", "Алматы", "Шымкент"}
	if len(cities) != len(want) {
		t.Fatalf("cities = %v, want %v", cities, want)
	}
	for i := range want {
		if cities[i] != want[i] {
			t.Fatalf("cities = %v, want %v", cities, want)
		}
	}
}

func TestLaneRates(t *testing.T) {
	h := NewShippingHandler(newFakeRateStore(), pricing.NewEngine(25))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/rates?startCity=Астана&endCity=Алматы", nil)
	rec := httptest.NewRecorder()
	if err := h.LaneRates(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp rateResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PricePerKgComposition != 100 || resp.EstimatedDeliveryDaysMax != 4 {
		t.Fatalf("unexpected rates: %+v", resp)
	}

	// Missing params are a validation error, not a lookup miss.
	req = httptest.NewRequest(http.MethodGet, "/v1/rates?startCity=Астана", nil)
	rec = httptest.NewRecorder()
	if err := h.LaneRates(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
