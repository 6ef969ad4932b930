package service

import (
	"vkarimov/food-delivery/internal/geo"
)

// RouteStopInput is one restaurant in the order the client wants to visit it.
type RouteStopInput struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// RouteLeg is one segment of the estimated route, measured from the
// previous stop (or the origin) to this restaurant.
type RouteLeg struct {
	RestaurantName      string  `json:"restaurant_name"`
	DistanceKm          float64 `json:"distance_km"`
	DeliveryTimeMinutes int     `json:"delivery_time_minutes"`
	Lat                 float64 `json:"lat"`
	Lon                 float64 `json:"lon"`
}

type RouteEstimate struct {
	Route                    []RouteLeg `json:"route"`
	TotalDistanceKm          float64    `json:"total_distance_km"`
	TotalDeliveryTimeMinutes int        `json:"total_delivery_time_minutes"`
}

// EstimateRoute walks the restaurants in the order supplied by the caller,
// treating them as a path from the user's location: each leg is measured
// from the previous stop, not from the origin. No re-ordering or
// shortest-path solving happens here. Leg times use the default base time
// rather than each restaurant's own estimate; the listing endpoint differs
// on purpose.
func EstimateRoute(origin geo.Point, restaurants []RouteStopInput) RouteEstimate {
	route := make([]RouteLeg, 0, len(restaurants))

	var totalDistance float64
	var totalTime int

	current := origin
	for _, r := range restaurants {
		distance := geo.Distance(current.Lat, current.Lon, r.Lat, r.Lon)
		deliveryTime := geo.DeliveryTimeMinutes(distance, geo.DefaultBaseMinutes)

		route = append(route, RouteLeg{
			RestaurantName:      r.Name,
			DistanceKm:          geo.RoundKm(distance),
			DeliveryTimeMinutes: deliveryTime,
			Lat:                 r.Lat,
			Lon:                 r.Lon,
		})

		totalDistance += distance
		totalTime += deliveryTime
		current = geo.Point{Lat: r.Lat, Lon: r.Lon}
	}

	return RouteEstimate{
		Route:                    route,
		TotalDistanceKm:          geo.RoundKm(totalDistance),
		TotalDeliveryTimeMinutes: totalTime,
	}
}
