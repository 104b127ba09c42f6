package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	// MaxDetections caps the in-memory detection log.
	MaxDetections = 50
	// XPPerKg converts saved CO2 into experience points.
	XPPerKg = 10
	// XPPerLevel scales the experience required to leave a level.
	XPPerLevel = 200
	// MaxCO2PerDetection bounds a single detection so its XP fits an int.
	MaxCO2PerDetection = 1e9
)

// Detection is one recorded waste detection. Values are never mutated after
// the aggregator creates them.
type Detection struct {
	ID         string
	Material   string
	Confidence float64
	CO2Saved   float64
	Timestamp  time.Time
}

// Milestone is a transient achievement notification.
type Milestone struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

// State is the aggregate gamification record. Detections are newest first.
type State struct {
	Detections    []Detection
	TotalCO2Saved float64
	Level         int
	XP            int
	Streak        int
}

// Seed is the configurable starting point of a State.
type Seed struct {
	Level  int
	XP     int
	Streak int
}

func (s Seed) Validate() error {
	if s.Level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", s.Level)
	}
	if s.XP < 0 {
		return fmt.Errorf("xp must be non-negative, got %d", s.XP)
	}
	if s.Streak < 0 {
		return fmt.Errorf("streak must be non-negative, got %d", s.Streak)
	}
	return nil
}

// NewState builds an empty State from seed. A seed whose XP already exceeds
// the level threshold is normalized with the regular level-up rule.
func NewState(seed Seed) State {
	level, xp, _ := settleLevel(seed.Level, seed.XP)
	return State{Level: level, XP: xp, Streak: seed.Streak}
}

// RequiredXPForLevel is the experience needed to advance from level.
func RequiredXPForLevel(level int) int {
	return level * XPPerLevel
}

// XPForCO2 is the experience granted for saving kg of CO2. Inputs beyond
// MaxCO2PerDetection saturate; negative and NaN inputs grant nothing.
func XPForCO2(kg float64) int {
	if !(kg > 0) {
		return 0
	}
	return int(math.Floor(math.Min(kg, MaxCO2PerDetection) * XPPerKg))
}

// Transition is the outcome of applying one detection.
type Transition struct {
	State        State
	XPGained     int
	LevelsGained int
	// Milestone is the notification surfaced by this detection, if any.
	Milestone *Milestone
}

// Apply records detection on s and derives every downstream effect. s is not
// modified; the returned State owns a fresh detection slice.
//
// Levels cascade: XP keeps paying for levels until it is below the next
// threshold. A level-up claims the notification slot; otherwise the first
// CO2 threshold freshly crossed (ascending) is surfaced, and only that one.
func Apply(s State, detection Detection) Transition {
	next := s
	next.Detections = prepend(s.Detections, detection)

	oldTotal := s.TotalCO2Saved
	next.TotalCO2Saved = oldTotal + detection.CO2Saved

	gained := XPForCO2(detection.CO2Saved)
	level, xp, levels := settleLevel(s.Level, s.XP+gained)
	next.Level = level
	next.XP = xp

	out := Transition{State: next, XPGained: gained, LevelsGained: levels}
	if levels > 0 {
		m := LevelUpMilestone(level)
		out.Milestone = &m
		return out
	}
	if m, ok := CrossedThreshold(oldTotal, next.TotalCO2Saved); ok {
		out.Milestone = &m
	}
	return out
}

func settleLevel(level, xp int) (int, int, int) {
	gained := 0
	for xp >= RequiredXPForLevel(level) {
		xp -= RequiredXPForLevel(level)
		level++
		gained++
	}
	return level, xp, gained
}

func prepend(log []Detection, d Detection) []Detection {
	size := len(log) + 1
	if size > MaxDetections {
		size = MaxDetections
	}
	out := make([]Detection, 0, size)
	out = append(out, d)
	for _, existing := range log {
		if len(out) == MaxDetections {
			break
		}
		out = append(out, existing)
	}
	return out
}

// TreesEquivalent is the number of trees absorbing the same CO2 for a year.
func TreesEquivalent(totalKg float64) int {
	return int(math.Floor(totalKg / 21))
}

// CarKmOffset is the distance an average car drives emitting totalKg.
func CarKmOffset(totalKg float64) int {
	return int(math.Floor(totalKg * 5.2))
}

// EarthHealth maps totalKg onto 0..100, saturating at one tonne.
func EarthHealth(totalKg float64) float64 {
	return math.Min(100, totalKg/1000*100)
}
