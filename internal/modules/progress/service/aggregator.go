package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ecoscan/internal/modules/progress/domain"
	"ecoscan/internal/platform/clock"
	"ecoscan/internal/platform/id"
	"ecoscan/internal/platform/logging"
	"ecoscan/internal/platform/scheduler"
)

const DefaultDisplayDuration = 3 * time.Second

type Options struct {
	Seed            domain.Seed
	DisplayDuration time.Duration
}

// Aggregator owns the gamification state and the active milestone. Every
// mutation goes through Record, Dismiss, or the milestone expiry timer.
type Aggregator struct {
	clock     clock.Clock
	idGen     id.Generator
	scheduler scheduler.Scheduler
	logger    *slog.Logger
	display   time.Duration

	mu        sync.Mutex
	state     domain.State
	milestone *domain.Milestone
	expiry    scheduler.Timer
	// generation invalidates expiry callbacks that lost a race with Stop.
	generation uint64
}

func NewAggregator(clock clock.Clock, idGen id.Generator, sched scheduler.Scheduler, logger *slog.Logger, opts Options) (*Aggregator, error) {
	if err := opts.Seed.Validate(); err != nil {
		return nil, fmt.Errorf("progress seed: %w", err)
	}
	display := opts.DisplayDuration
	if display <= 0 {
		display = DefaultDisplayDuration
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Aggregator{
		clock:     clock,
		idGen:     idGen,
		scheduler: sched,
		logger:    logger.With("component", "progress"),
		display:   display,
		state:     domain.NewState(opts.Seed),
	}, nil
}

// Recorded is a transition plus the milestone active once it was applied,
// both read under the same lock.
type Recorded struct {
	domain.Transition
	Active *domain.Milestone
}

// Record applies one detection as a single transition.
func (a *Aggregator) Record(material string, confidence, co2Saved float64) Recorded {
	a.mu.Lock()
	defer a.mu.Unlock()

	detection := domain.Detection{
		ID:         a.idGen.New(),
		Material:   material,
		Confidence: confidence,
		CO2Saved:   co2Saved,
		Timestamp:  a.clock.Now(),
	}
	tr := domain.Apply(a.state, detection)
	a.state = tr.State
	if tr.LevelsGained > 0 {
		a.logger.Info("level up", "level", tr.State.Level, "levels_gained", tr.LevelsGained)
	}
	if tr.Milestone != nil {
		a.showLocked(*tr.Milestone)
	}
	return Recorded{Transition: tr, Active: a.activeLocked()}
}

// Dismiss clears the active milestone and cancels its expiry. Idempotent.
func (a *Aggregator) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.milestone = nil
}

// State returns the current state and active milestone. Detection slices are
// never mutated in place, so the returned state may be shared freely.
func (a *Aggregator) State() (domain.State, *domain.Milestone) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.activeLocked()
}

func (a *Aggregator) activeLocked() *domain.Milestone {
	if a.milestone == nil {
		return nil
	}
	m := *a.milestone
	return &m
}

// Close cancels any pending expiry.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

func (a *Aggregator) showLocked(m domain.Milestone) {
	a.cancelLocked()
	a.milestone = &m
	gen := a.generation
	a.expiry = a.scheduler.AfterFunc(a.display, func() { a.expire(gen) })
	a.logger.Info("milestone", "id", m.ID, "title", m.Title, "display", a.display)
}

func (a *Aggregator) cancelLocked() {
	a.generation++
	if a.expiry != nil {
		a.expiry.Stop()
		a.expiry = nil
	}
}

func (a *Aggregator) expire(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation || a.milestone == nil {
		return
	}
	a.logger.Debug("milestone expired", "id", a.milestone.ID)
	a.milestone = nil
	a.expiry = nil
}
