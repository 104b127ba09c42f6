package dto

import "time"

type AchievementOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    string
	Progress    float64
	Target      float64
	Percent     float64
	Unlocked    bool
}

type ChallengeOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Progress    float64
	Target      float64
	Reward      int
	Completed   bool
	ExpiresAt   time.Time
}

type LeaderboardEntryOutput struct {
	Rank     int
	Name     string
	Avatar   string
	CO2Saved float64
	IsUser   bool
}

type OverviewOutput struct {
	Achievements []AchievementOutput
	Unlocked     int
	Challenges   []ChallengeOutput
	Leaderboard  []LeaderboardEntryOutput
	UserRank     int
}
