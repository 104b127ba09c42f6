package domain

type AchievementCategory string

const (
	CategoryDetection AchievementCategory = "detection"
	CategoryCO2       AchievementCategory = "co2"
	CategoryStreak    AchievementCategory = "streak"
	CategorySocial    AchievementCategory = "social"
)

// Stats is the progress an achievement is measured against.
type Stats struct {
	Detections int
	TotalCO2   float64
	Streak     int
	// Rank is the user's leaderboard position, 0 when unranked.
	Rank int
}

type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    AchievementCategory
	Progress    float64
	Target      float64
	Unlocked    bool
}

type achievementRule struct {
	id, title, description, icon string
	category                     AchievementCategory
	target                       float64
	measure                      func(Stats) float64
}

var achievementRules = []achievementRule{
	{"first-scan", "First Scan", "Complete your first waste detection", "target", CategoryDetection, 1, func(s Stats) float64 { return float64(s.Detections) }},
	{"eco-warrior", "Eco Warrior", "Detect 50 items", "shield", CategoryDetection, 50, func(s Stats) float64 { return float64(s.Detections) }},
	{"carbon-crusher", "Carbon Crusher", "Save 100kg of CO₂", "zap", CategoryCO2, 100, func(s Stats) float64 { return s.TotalCO2 }},
	{"week-streak", "Week Warrior", "Maintain a 7-day streak", "flame", CategoryStreak, 7, func(s Stats) float64 { return float64(s.Streak) }},
	{"top-10", "Top 10", "Reach top 10 on leaderboard", "trophy", CategorySocial, 1, inTopTen},
	{"planet-saver", "Planet Saver", "Save 500kg of CO₂", "globe", CategoryCO2, 500, func(s Stats) float64 { return s.TotalCO2 }},
}

// inTopTen needs a non-zero total so a fresh profile is not rewarded for a
// short leaderboard.
func inTopTen(s Stats) float64 {
	if s.Rank >= 1 && s.Rank <= 10 && s.TotalCO2 > 0 {
		return 1
	}
	return 0
}

// Achievements evaluates every achievement against stats, in display order.
func Achievements(stats Stats) []Achievement {
	out := make([]Achievement, 0, len(achievementRules))
	for _, r := range achievementRules {
		progress := r.measure(stats)
		out = append(out, Achievement{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Icon:        r.icon,
			Category:    r.category,
			Progress:    progress,
			Target:      r.target,
			Unlocked:    progress >= r.target,
		})
	}
	return out
}

// Percent is progress toward Target, capped at 100.
func (a Achievement) Percent() float64 {
	if a.Target <= 0 {
		return 100
	}
	return min(100, a.Progress/a.Target*100)
}
