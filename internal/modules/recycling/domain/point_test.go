package domain_test

import (
	"math"
	"testing"

	"ecoscan/internal/modules/recycling/domain"
)

var points = []domain.Point{
	{ID: "1", Name: "Tbilisi Central Recycling Hub", Lat: 41.7151, Lng: 44.8271, Materials: []string{"Plastic", "Metal", "Glass", "Paper"}},
	{ID: "2", Name: "Vake Eco Collection Point", Lat: 41.6938, Lng: 44.7710, Materials: []string{"Plastic", "Paper"}},
	{ID: "4", Name: "Batumi Coastal Recycling", Lat: 41.6168, Lng: 41.6367, Materials: []string{"Plastic", "Metal"}},
}

func TestDistanceKm(t *testing.T) {
	t.Parallel()
	if d := domain.DistanceKm(41.7151, 44.8271, 41.7151, 44.8271); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
	// Tbilisi to Batumi is roughly 265km as the crow flies.
	d := domain.DistanceKm(41.7151, 44.8271, 41.6168, 41.6367)
	if d < 255 || d > 275 {
		t.Fatalf("unexpected Tbilisi-Batumi distance %v", d)
	}
	back := domain.DistanceKm(41.6168, 41.6367, 41.7151, 44.8271)
	if math.Abs(d-back) > 1e-9 {
		t.Fatalf("distance must be symmetric: %v vs %v", d, back)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()
	if got := domain.Filter(points, nil); len(got) != 3 {
		t.Fatalf("empty filter must keep all points, got %d", len(got))
	}
	got := domain.Filter(points, []string{"metal"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "4" {
		t.Fatalf("unexpected metal points %+v", got)
	}
	got = domain.Filter(points, []string{"Glass", "Paper"})
	if len(got) != 2 || got[1].ID != "2" {
		t.Fatalf("expected any-material match, got %+v", got)
	}
	if got := domain.Filter(points, []string{"Tyres"}); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestNearest(t *testing.T) {
	t.Parallel()
	p, d, ok := domain.Nearest(points, 41.64, 41.63)
	if !ok || p.ID != "4" || d > 5 {
		t.Fatalf("expected Batumi point nearby, got %+v at %v", p, d)
	}
	if _, _, ok := domain.Nearest(nil, 0, 0); ok {
		t.Fatalf("expected no nearest point for empty input")
	}
}
