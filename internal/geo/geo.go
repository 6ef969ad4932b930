// Package geo provides straight-line distance and delivery time estimation.
package geo

import "math"

const earthRadiusKm = 6371

// DefaultBaseMinutes is the base delivery time used when no
// restaurant-specific estimate applies.
const DefaultBaseMinutes = 20

// Point is a geographic coordinate (WGS 84 degrees).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance in kilometers between two
// points, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DeliveryTimeMinutes estimates delivery time as the base time plus
// 2 minutes per kilometer, truncated to whole minutes.
func DeliveryTimeMinutes(distanceKm float64, baseMinutes int) int {
	return int(float64(baseMinutes) + distanceKm*2)
}

// RoundKm rounds a distance to one decimal place for presentation.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
