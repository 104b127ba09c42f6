package dto

import "time"

type RecordInput struct {
	Material   string
	Confidence float64
	CO2Saved   float64
}

type DetectionOutput struct {
	ID         string
	Material   string
	Confidence float64
	CO2Saved   float64
	Timestamp  time.Time
}

type MilestoneOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

type SnapshotOutput struct {
	Detections      []DetectionOutput
	TotalCO2Saved   float64
	Level           int
	XP              int
	NextLevelXP     int
	Streak          int
	Milestone       *MilestoneOutput
	TreesEquivalent int
	CarKmOffset     int
	EarthHealth     float64
}

type RecordOutput struct {
	Detection    DetectionOutput
	XPGained     int
	LevelsGained int
	// Milestone is the notification raised by this detection, if any.
	Milestone *MilestoneOutput
	Snapshot  SnapshotOutput
}

type TallyOutput struct {
	Material string
	Count    int
	CO2Saved float64
}
