package service_test

import (
	"testing"

	"vkarimov/food-delivery/internal/geo"
	"vkarimov/food-delivery/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRoute_LegsAreSequential(t *testing.T) {
	origin := geo.Point{Lat: 59.9311, Lon: 30.3609}
	r1 := service.RouteStopInput{Name: "Пицца Мания", Lat: 60.0, Lon: 30.4}
	r2 := service.RouteStopInput{Name: "Суши Токио", Lat: 59.95, Lon: 30.3}

	estimate := service.EstimateRoute(origin, []service.RouteStopInput{r1, r2})

	require.Len(t, estimate.Route, 2)
	assert.Equal(t, "Пицца Мания", estimate.Route[0].RestaurantName)
	assert.Equal(t, "Суши Токио", estimate.Route[1].RestaurantName)

	leg1 := geo.Distance(origin.Lat, origin.Lon, r1.Lat, r1.Lon)
	leg2 := geo.Distance(r1.Lat, r1.Lon, r2.Lat, r2.Lon)
	fromOrigin := geo.Distance(origin.Lat, origin.Lon, r2.Lat, r2.Lon)

	assert.Equal(t, geo.RoundKm(leg1), estimate.Route[0].DistanceKm)
	// The second leg runs from the first stop, not from the origin.
	assert.Equal(t, geo.RoundKm(leg2), estimate.Route[1].DistanceKm)
	assert.NotEqual(t, geo.RoundKm(fromOrigin), estimate.Route[1].DistanceKm)

	assert.InDelta(t, leg1+leg2, estimate.TotalDistanceKm, 0.1)

	wantTime := geo.DeliveryTimeMinutes(leg1, geo.DefaultBaseMinutes) +
		geo.DeliveryTimeMinutes(leg2, geo.DefaultBaseMinutes)
	assert.Equal(t, wantTime, estimate.TotalDeliveryTimeMinutes)
}

func TestEstimateRoute_UsesDefaultBaseTime(t *testing.T) {
	origin := geo.Point{Lat: 59.9311, Lon: 30.3609}
	stop := service.RouteStopInput{Name: "Бургер Хаус", Lat: 59.9311, Lon: 30.3609}

	estimate := service.EstimateRoute(origin, []service.RouteStopInput{stop})

	require.Len(t, estimate.Route, 1)
	assert.Equal(t, 0.0, estimate.Route[0].DistanceKm)
	assert.Equal(t, geo.DefaultBaseMinutes, estimate.Route[0].DeliveryTimeMinutes)
}

func TestEstimateRoute_EmptyList(t *testing.T) {
	estimate := service.EstimateRoute(geo.Point{Lat: 59.9311, Lon: 30.3609}, nil)

	assert.Empty(t, estimate.Route)
	assert.NotNil(t, estimate.Route)
	assert.Equal(t, 0.0, estimate.TotalDistanceKm)
	assert.Equal(t, 0, estimate.TotalDeliveryTimeMinutes)
}
