package bootstrap_test

import (
	"context"
	"testing"

	"ecoscan/internal/bootstrap"
	"ecoscan/internal/platform/config"
)

func TestNewWiresEveryModule(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(config.Default(), nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	scan, err := app.DetectorCLI.Detect(ctx, "glass-bottle")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if scan.Source != "simulator" || scan.Material.Name != "Glass Bottle" {
		t.Fatalf("unexpected scan %+v", scan)
	}

	snap, err := app.ProgressCLI.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Detections) != 1 || snap.TotalCO2Saved != 3.2 {
		t.Fatalf("detection not aggregated: %+v", snap)
	}

	ov, err := app.RewardsCLI.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(ov.Leaderboard) != 5 || len(ov.Challenges) != 3 || len(ov.Achievements) != 6 {
		t.Fatalf("unexpected overview sizes: %d rivals, %d challenges, %d achievements",
			len(ov.Leaderboard), len(ov.Challenges), len(ov.Achievements))
	}

	points, err := app.RecyclingCLI.List(ctx, []string{"Glass"})
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(points) == 0 {
		t.Fatalf("expected glass recycling points")
	}

	doctor, err := app.DetectorCLI.Doctor(ctx)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if doctor.Configured {
		t.Fatalf("default config must not configure a plugin")
	}
}
