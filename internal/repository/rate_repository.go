package repository

import (
	"context"
	"database/sql"

	"github.com/olzhasbek/qazcargo/internal/model"
)

// RateRepo reads the shipping rate tables. Rates and base costs are
// maintained by an administrative process; this repo never writes them.
type RateRepo struct{ DB *sql.DB }

func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{DB: db} }

const routeColumns = "start_city,end_city,price_per_kg_composition,price_per_kg_door," +
	"estimated_delivery_days_min,estimated_delivery_days_max"

// FindRoute looks up the lane for an ordered (origin, destination) pair.
func (r *RateRepo) FindRoute(ctx context.Context, startCity, endCity string) (model.RouteRate, bool, error) {
	var rt model.RouteRate
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+routeColumns+" FROM shipping_routes WHERE start_city=? AND end_city=? LIMIT 1",
		startCity, endCity).Scan(
		&rt.StartCity, &rt.EndCity,
		&rt.PricePerKgComposition, &rt.PricePerKgDoor,
		&rt.EstimatedDeliveryDaysMin, &rt.EstimatedDeliveryDaysMax)
	if err == sql.ErrNoRows {
		return model.RouteRate{}, false, nil
	}
	if err != nil {
		return model.RouteRate{}, false, err
	}
	return rt, true, nil
}

// FindBaseCosts returns the single global base-cost record.
func (r *RateRepo) FindBaseCosts(ctx context.Context) (model.BaseCost, bool, error) {
	var bc model.BaseCost
	err := r.DB.QueryRowContext(ctx,
		"SELECT base_cost_composition, base_cost_door FROM base_costs LIMIT 1").
		Scan(&bc.Composition, &bc.Door)
	if err == sql.ErrNoRows {
		return model.BaseCost{}, false, nil
	}
	if err != nil {
		return model.BaseCost{}, false, err
	}
	return bc, true, nil
}

// ListAllRoutes returns every priced lane, ordered for stable output.
func (r *RateRepo) ListAllRoutes(ctx context.Context) ([]model.RouteRate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+routeColumns+" FROM shipping_routes ORDER BY start_city, end_city")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []model.RouteRate
	for rows.Next() {
		var rt model.RouteRate
		if err := rows.Scan(
			&rt.StartCity, &rt.EndCity,
			&rt.PricePerKgComposition, &rt.PricePerKgDoor,
			&rt.EstimatedDeliveryDaysMin, &rt.EstimatedDeliveryDaysMax); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

// ListCities returns the distinct set of city names appearing as either
// origin or destination across all lanes. Ordering is applied by the
// pricing service, not here.
func (r *RateRepo) ListCities(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT city FROM (
			SELECT start_city AS city FROM shipping_routes
			UNION
			SELECT end_city AS city FROM shipping_routes
		) AS cities`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
