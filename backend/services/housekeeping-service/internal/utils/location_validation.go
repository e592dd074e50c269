package utils

import (
	"github.com/umahmood/haversine"
)

// DistanceMeters is the great-circle distance between two coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lng1},
		haversine.Coord{Lat: lat2, Lon: lng2},
	)
	return km * 1000
}

// ValidateCoordinates returns false when lat/lng are out of range.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// WithinRadius reports whether (lat, lng) lies within radiusMeters of the
// centre.
func WithinRadius(lat, lng, centreLat, centreLng, radiusMeters float64) bool {
	return DistanceMeters(lat, lng, centreLat, centreLng) <= radiusMeters
}
