package geo

import (
	"math"
	"regexp"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle distances
const EarthRadiusMiles = 3958.8

// Point is a latitude/longitude pair in degrees
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// IsZipCode reports whether s is a 5-digit US zip code
func IsZipCode(s string) bool {
	return zipPattern.MatchString(s)
}

// DistanceMiles returns the haversine distance between two points in miles
func DistanceMiles(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// WithinRadius reports whether b lies within radius miles of a
func WithinRadius(a, b Point, radius float64) bool {
	return DistanceMiles(a, b) <= radius
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
