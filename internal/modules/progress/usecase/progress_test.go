package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ecoscan/internal/modules/progress/domain"
	"ecoscan/internal/modules/progress/dto"
	progressout "ecoscan/internal/modules/progress/port/out"
	"ecoscan/internal/modules/progress/service"
	"ecoscan/internal/modules/progress/usecase"
	apperrors "ecoscan/internal/platform/errors"
	"ecoscan/internal/platform/scheduler"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticIDs struct{}

func (staticIDs) New() string { return "det-1" }

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

type manualScheduler struct{}

func (manualScheduler) AfterFunc(time.Duration, func()) scheduler.Timer { return noopTimer{} }

type fakeProjector struct {
	projected []domain.Detection
	err       error
	tallies   []progressout.Tally
	since     time.Time
}

func (p *fakeProjector) Project(_ context.Context, d domain.Detection) error {
	p.projected = append(p.projected, d)
	return p.err
}

func (p *fakeProjector) Tallies(_ context.Context, since time.Time) ([]progressout.Tally, error) {
	p.since = since
	return p.tallies, p.err
}

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newAggregator(t *testing.T, seed domain.Seed) *service.Aggregator {
	t.Helper()
	agg, err := service.NewAggregator(fixedClock{now: now}, staticIDs{}, manualScheduler{}, nil, service.Options{Seed: seed})
	if err != nil {
		t.Fatalf("new aggregator: %v", err)
	}
	return agg
}

func TestRecordDetectionRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 1}), nil, nil)
	cases := []dto.RecordInput{
		{Material: "  ", Confidence: 0.8, CO2Saved: 1},
		{Material: "Paper", Confidence: 1.2, CO2Saved: 1},
		{Material: "Paper", Confidence: -0.1, CO2Saved: 1},
		{Material: "Paper", Confidence: math.NaN(), CO2Saved: 1},
		{Material: "Paper", Confidence: 0.8, CO2Saved: -1},
		{Material: "Paper", Confidence: 0.8, CO2Saved: math.Inf(1)},
		{Material: "Paper", Confidence: 0.8, CO2Saved: 1e19},
		{Material: "Paper", Confidence: 0.8, CO2Saved: domain.MaxCO2PerDetection * 2},
	}
	for _, in := range cases {
		if _, err := uc.RecordDetection(context.Background(), in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
	snap, _ := uc.Snapshot(context.Background())
	if len(snap.Detections) != 0 {
		t.Fatalf("rejected input must not change state")
	}
}

func TestRecordDetectionAcceptsCeiling(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 5, XP: 450}), nil, nil)
	out, err := uc.RecordDetection(context.Background(), dto.RecordInput{Material: "Paper", Confidence: 0.8, CO2Saved: domain.MaxCO2PerDetection})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.XPGained <= 0 || out.Snapshot.XP < 0 || out.Snapshot.XP >= out.Snapshot.NextLevelXP {
		t.Fatalf("xp out of range: gained %d xp %d next %d", out.XPGained, out.Snapshot.XP, out.Snapshot.NextLevelXP)
	}
	if out.Milestone == nil || out.Snapshot.Milestone == nil || out.Snapshot.Milestone.ID != out.Milestone.ID {
		t.Fatalf("snapshot milestone %+v must match recorded milestone %+v", out.Snapshot.Milestone, out.Milestone)
	}
}

func TestRecordDetectionReportsLevelUp(t *testing.T) {
	t.Parallel()
	proj := &fakeProjector{}
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 5, XP: 450, Streak: 3}), proj, nil)
	out, err := uc.RecordDetection(context.Background(), dto.RecordInput{Material: "Metal Scrap", Confidence: 0.9, CO2Saved: 60})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.XPGained != 600 || out.LevelsGained != 1 {
		t.Fatalf("unexpected gains %+v", out)
	}
	if out.Milestone == nil || out.Milestone.Title != "Level 6 Reached!" {
		t.Fatalf("expected level milestone, got %+v", out.Milestone)
	}
	snap := out.Snapshot
	if snap.Level != 6 || snap.XP != 50 || snap.NextLevelXP != 1200 || snap.Streak != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Milestone == nil {
		t.Fatalf("expected active milestone in snapshot")
	}
	if len(proj.projected) != 1 || proj.projected[0].ID != "det-1" {
		t.Fatalf("expected detection to be projected, got %+v", proj.projected)
	}
}

func TestRecordDetectionIgnoresProjectorFailure(t *testing.T) {
	t.Parallel()
	proj := &fakeProjector{err: errors.New("disk gone")}
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 1}), proj, nil)
	if _, err := uc.RecordDetection(context.Background(), dto.RecordInput{Material: "Paper", Confidence: 0.8, CO2Saved: 1.2}); err != nil {
		t.Fatalf("projector errors must not fail recording: %v", err)
	}
}

func TestDismissMilestone(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 100}), nil, nil)
	if _, err := uc.RecordDetection(context.Background(), dto.RecordInput{Material: "Glass Bottle", Confidence: 0.9, CO2Saved: 10}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := uc.DismissMilestone(context.Background()); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	snap, _ := uc.Snapshot(context.Background())
	if snap.Milestone != nil {
		t.Fatalf("expected no milestone, got %+v", snap.Milestone)
	}
	if snap.TreesEquivalent != 0 || snap.CarKmOffset != 52 || snap.EarthHealth != 1 {
		t.Fatalf("unexpected derived metrics %+v", snap)
	}
}

func TestTalliesFallsBackToLog(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 100}), nil, nil)
	for _, in := range []dto.RecordInput{
		{Material: "Plastic Bag", Confidence: 0.8, CO2Saved: 0.8},
		{Material: "Paper", Confidence: 0.8, CO2Saved: 1.2},
		{Material: "Plastic Bag", Confidence: 0.8, CO2Saved: 0.8},
	} {
		if _, err := uc.RecordDetection(context.Background(), in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	tallies, err := uc.Tallies(context.Background(), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	if len(tallies) != 2 || tallies[0].Material != "Paper" || tallies[1].Count != 2 {
		t.Fatalf("unexpected tallies %+v", tallies)
	}
	later, _ := uc.Tallies(context.Background(), now.Add(time.Hour))
	if len(later) != 0 {
		t.Fatalf("expected tallies after since to be empty, got %+v", later)
	}
}

func TestTalliesUsesProjector(t *testing.T) {
	t.Parallel()
	proj := &fakeProjector{tallies: []progressout.Tally{{Material: "Steel Can", Count: 3, CO2Saved: 10.5}}}
	uc := usecase.NewInteractor(newAggregator(t, domain.Seed{Level: 1}), proj, nil)
	got, err := uc.Tallies(context.Background(), now)
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	if len(got) != 1 || got[0].Count != 3 || !proj.since.Equal(now) {
		t.Fatalf("unexpected tallies %+v since %s", got, proj.since)
	}
}
