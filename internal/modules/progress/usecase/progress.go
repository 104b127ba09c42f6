package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"ecoscan/internal/modules/progress/domain"
	"ecoscan/internal/modules/progress/dto"
	progressin "ecoscan/internal/modules/progress/port/in"
	progressout "ecoscan/internal/modules/progress/port/out"
	"ecoscan/internal/modules/progress/service"
	apperrors "ecoscan/internal/platform/errors"
	"ecoscan/internal/platform/logging"
)

type Interactor struct {
	agg       *service.Aggregator
	projector progressout.DetectionProjector
	logger    *slog.Logger
}

// NewInteractor wires the aggregator to an optional tally projector. Without a
// projector, Tallies falls back to the capped in-memory log.
func NewInteractor(agg *service.Aggregator, projector progressout.DetectionProjector, logger *slog.Logger) progressin.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{agg: agg, projector: projector, logger: logger}
}

func (i *Interactor) RecordDetection(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	if err := validateRecord(input); err != nil {
		return dto.RecordOutput{}, err
	}
	tr := i.agg.Record(strings.TrimSpace(input.Material), input.Confidence, input.CO2Saved)
	detection := tr.State.Detections[0]
	if i.projector != nil {
		if err := i.projector.Project(ctx, detection); err != nil {
			i.logger.Warn("project detection", "id", detection.ID, "error", err)
		}
	}
	i.logger.Debug("detection recorded", "material", detection.Material, "co2_kg", detection.CO2Saved, "xp_gained", tr.XPGained)

	return dto.RecordOutput{
		Detection:    toDetectionOutput(detection),
		XPGained:     tr.XPGained,
		LevelsGained: tr.LevelsGained,
		Milestone:    toMilestoneOutput(tr.Milestone),
		Snapshot:     toSnapshot(tr.State, tr.Active),
	}, nil
}

func (i *Interactor) DismissMilestone(context.Context) error {
	i.agg.Dismiss()
	return nil
}

func (i *Interactor) Snapshot(context.Context) (dto.SnapshotOutput, error) {
	state, active := i.agg.State()
	return toSnapshot(state, active), nil
}

func (i *Interactor) Tallies(ctx context.Context, since time.Time) ([]dto.TallyOutput, error) {
	if i.projector == nil {
		state, _ := i.agg.State()
		return talliesFromLog(state.Detections, since), nil
	}
	tallies, err := i.projector.Tallies(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load tallies: %w", err)
	}
	out := make([]dto.TallyOutput, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, dto.TallyOutput{Material: t.Material, Count: t.Count, CO2Saved: t.CO2Saved})
	}
	return out, nil
}

func validateRecord(input dto.RecordInput) error {
	if strings.TrimSpace(input.Material) == "" {
		return fmt.Errorf("%w: material is required", apperrors.ErrInvalidInput)
	}
	if math.IsNaN(input.Confidence) || input.Confidence < 0 || input.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be within [0,1], got %v", apperrors.ErrInvalidInput, input.Confidence)
	}
	if math.IsNaN(input.CO2Saved) || math.IsInf(input.CO2Saved, 0) || input.CO2Saved < 0 {
		return fmt.Errorf("%w: co2 saved must be a non-negative number, got %v", apperrors.ErrInvalidInput, input.CO2Saved)
	}
	if input.CO2Saved > domain.MaxCO2PerDetection {
		return fmt.Errorf("%w: co2 saved %v exceeds %v kg", apperrors.ErrInvalidInput, input.CO2Saved, domain.MaxCO2PerDetection)
	}
	return nil
}

func talliesFromLog(detections []domain.Detection, since time.Time) []dto.TallyOutput {
	byMaterial := map[string]*dto.TallyOutput{}
	for _, d := range detections {
		if d.Timestamp.Before(since) {
			continue
		}
		t, ok := byMaterial[d.Material]
		if !ok {
			t = &dto.TallyOutput{Material: d.Material}
			byMaterial[d.Material] = t
		}
		t.Count++
		t.CO2Saved += d.CO2Saved
	}
	out := make([]dto.TallyOutput, 0, len(byMaterial))
	for _, t := range byMaterial {
		out = append(out, *t)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Material < out[b].Material })
	return out
}

func toSnapshot(state domain.State, active *domain.Milestone) dto.SnapshotOutput {
	detections := make([]dto.DetectionOutput, 0, len(state.Detections))
	for _, d := range state.Detections {
		detections = append(detections, toDetectionOutput(d))
	}
	return dto.SnapshotOutput{
		Detections:      detections,
		TotalCO2Saved:   state.TotalCO2Saved,
		Level:           state.Level,
		XP:              state.XP,
		NextLevelXP:     domain.RequiredXPForLevel(state.Level),
		Streak:          state.Streak,
		Milestone:       toMilestoneOutput(active),
		TreesEquivalent: domain.TreesEquivalent(state.TotalCO2Saved),
		CarKmOffset:     domain.CarKmOffset(state.TotalCO2Saved),
		EarthHealth:     domain.EarthHealth(state.TotalCO2Saved),
	}
}

func toDetectionOutput(d domain.Detection) dto.DetectionOutput {
	return dto.DetectionOutput{
		ID:         d.ID,
		Material:   d.Material,
		Confidence: d.Confidence,
		CO2Saved:   d.CO2Saved,
		Timestamp:  d.Timestamp,
	}
}

func toMilestoneOutput(m *domain.Milestone) *dto.MilestoneOutput {
	if m == nil {
		return nil
	}
	return &dto.MilestoneOutput{ID: m.ID, Title: m.Title, Description: m.Description, Icon: m.Icon}
}
