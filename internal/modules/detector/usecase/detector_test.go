package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecoscan/internal/modules/detector/domain"
	detectorout "ecoscan/internal/modules/detector/port/out"
	"ecoscan/internal/modules/detector/service"
	"ecoscan/internal/modules/detector/usecase"
	progressdto "ecoscan/internal/modules/progress/dto"
	apperrors "ecoscan/internal/platform/errors"
)

type fixedRandom struct{ n int }

func (fixedRandom) Float64() float64 { return 0.5 }
func (r fixedRandom) IntN(int) int   { return r.n }

type recordingProgress struct {
	inputs []progressdto.RecordInput
}

func (p *recordingProgress) RecordDetection(_ context.Context, in progressdto.RecordInput) (progressdto.RecordOutput, error) {
	p.inputs = append(p.inputs, in)
	return progressdto.RecordOutput{
		Detection: progressdto.DetectionOutput{ID: "d1", Material: in.Material, Confidence: in.Confidence, CO2Saved: in.CO2Saved},
		XPGained:  int(in.CO2Saved * 10),
	}, nil
}

func (p *recordingProgress) DismissMilestone(context.Context) error { return nil }

func (p *recordingProgress) Snapshot(context.Context) (progressdto.SnapshotOutput, error) {
	return progressdto.SnapshotOutput{}, nil
}

func (p *recordingProgress) Tallies(context.Context, time.Time) ([]progressdto.TallyOutput, error) {
	return nil, nil
}

func newUsecase(progress *recordingProgress, n int) *usecase.Interactor {
	r := detectorout.ConfidenceRange{Min: 0.75, Spread: 0.24}
	svc := service.NewDetectorService(service.NewSimulator(fixedRandom{n: n}, r), domain.Manifest{}, nil, r, nil)
	return usecase.NewInteractor(svc, progress).(*usecase.Interactor)
}

func TestScanRecordsSimulatedReading(t *testing.T) {
	t.Parallel()
	progress := &recordingProgress{}
	uc := newUsecase(progress, 2)
	out, err := uc.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(progress.inputs) != 1 || progress.inputs[0].Material != "Glass Bottle" || progress.inputs[0].CO2Saved != 3.2 {
		t.Fatalf("unexpected recorded input %+v", progress.inputs)
	}
	if out.Material.Category != "Glass" || out.Source != "simulator" || out.Record.XPGained != 32 {
		t.Fatalf("unexpected scan output %+v", out)
	}
}

func TestScanMaterial(t *testing.T) {
	t.Parallel()
	progress := &recordingProgress{}
	uc := newUsecase(progress, 0)
	out, err := uc.ScanMaterial(context.Background(), "newspaper")
	if err != nil {
		t.Fatalf("scan material: %v", err)
	}
	if out.Material.Name != "Newspaper" || out.Material.Slug != "newspaper" {
		t.Fatalf("unexpected material %+v", out.Material)
	}
	if _, err := uc.ScanMaterial(context.Background(), "tyre"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(progress.inputs) != 1 {
		t.Fatalf("unknown material must not be recorded")
	}
}

func TestCatalogAndDoctor(t *testing.T) {
	t.Parallel()
	uc := newUsecase(&recordingProgress{}, 0)
	catalog, err := uc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(catalog) != len(domain.Catalog) || catalog[0].Slug != "plastic-bottle" {
		t.Fatalf("unexpected catalog %+v", catalog)
	}
	doc, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if doc.Configured {
		t.Fatalf("expected no plugin configured, got %+v", doc)
	}
}
