package domain

import (
	"math"
	"strings"
)

// EarthRadiusKm is the mean radius used for haversine distances.
const EarthRadiusKm = 6371

type Point struct {
	ID        string
	Name      string
	Lat       float64
	Lng       float64
	Materials []string
	Hours     string
	Phone     string
	Address   string
	Website   string
}

// Accepts reports whether the point takes material, ignoring case.
func (p Point) Accepts(material string) bool {
	for _, m := range p.Materials {
		if strings.EqualFold(m, material) {
			return true
		}
	}
	return false
}

// AcceptsAny reports whether the point takes at least one of materials. An
// empty filter matches every point.
func (p Point) AcceptsAny(materials []string) bool {
	if len(materials) == 0 {
		return true
	}
	for _, m := range materials {
		if p.Accepts(m) {
			return true
		}
	}
	return false
}

// Filter keeps the points accepting any of materials, preserving order.
func Filter(points []Point, materials []string) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.AcceptsAny(materials) {
			out = append(out, p)
		}
	}
	return out
}

// DistanceKm is the great-circle distance between two coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearest returns the point closest to lat/lng; ok is false for no points.
// Ties keep the earlier point.
func Nearest(points []Point, lat, lng float64) (Point, float64, bool) {
	var (
		best     Point
		bestDist = math.Inf(1)
		found    bool
	)
	for _, p := range points {
		d := DistanceKm(lat, lng, p.Lat, p.Lng)
		if d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, bestDist, found
}
