package out_test

import (
	"context"
	"testing"
	"time"

	progressout "ecoscan/internal/modules/progress/adapter/out"
	"ecoscan/internal/modules/progress/domain"
)

func TestSQLiteTallyProjectorAggregatesSince(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteTallyProjector()
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	defer projector.Close()

	ctx := context.Background()
	midnight := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	detections := []domain.Detection{
		{ID: "a", Material: "Plastic Bottle", Confidence: 0.8, CO2Saved: 2.5, Timestamp: midnight.Add(-time.Minute)},
		{ID: "b", Material: "Plastic Bottle", Confidence: 0.8, CO2Saved: 2.5, Timestamp: midnight},
		{ID: "c", Material: "Plastic Bottle", Confidence: 0.9, CO2Saved: 2.5, Timestamp: midnight.Add(time.Hour)},
		{ID: "d", Material: "Aluminum Can", Confidence: 0.9, CO2Saved: 1.8, Timestamp: midnight.Add(2 * time.Hour)},
	}
	for _, d := range detections {
		if err := projector.Project(ctx, d); err != nil {
			t.Fatalf("project %s: %v", d.ID, err)
		}
	}
	if err := projector.Project(ctx, detections[3]); err != nil {
		t.Fatalf("re-project: %v", err)
	}

	tallies, err := projector.Tallies(ctx, midnight)
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("expected two materials, got %+v", tallies)
	}
	if tallies[0].Material != "Aluminum Can" || tallies[0].Count != 1 {
		t.Fatalf("unexpected first tally %+v", tallies[0])
	}
	if tallies[1].Material != "Plastic Bottle" || tallies[1].Count != 2 || tallies[1].CO2Saved != 5 {
		t.Fatalf("unexpected second tally %+v", tallies[1])
	}
}

func TestSQLiteTallyProjectorEmpty(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteTallyProjector()
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	defer projector.Close()
	tallies, err := projector.Tallies(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	if len(tallies) != 0 {
		t.Fatalf("expected no tallies, got %+v", tallies)
	}
}

func TestSQLiteTallyProjectorZeroSinceIncludesEverything(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteTallyProjector()
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	defer projector.Close()

	ctx := context.Background()
	old := domain.Detection{ID: "x", Material: "Glass Bottle", Confidence: 0.9, CO2Saved: 0.3, Timestamp: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := projector.Project(ctx, old); err != nil {
		t.Fatalf("project: %v", err)
	}
	tallies, err := projector.Tallies(ctx, time.Time{})
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Count != 1 {
		t.Fatalf("expected the lifetime tally, got %+v", tallies)
	}
}
