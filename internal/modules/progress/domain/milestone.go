package domain

import "fmt"

const LevelUpMilestoneID = "level-up"

// Threshold is a cumulative CO2 mark that surfaces a milestone once crossed.
type Threshold struct {
	Kg        float64
	Milestone Milestone
}

// Thresholds is evaluated in ascending order.
var Thresholds = []Threshold{
	{Kg: 10, Milestone: Milestone{ID: "first-10", Title: "Eco Beginner", Description: "Saved your first 10kg of CO₂!", Icon: "eco-beginner"}},
	{Kg: 50, Milestone: Milestone{ID: "first-50", Title: "Green Champion", Description: "Saved 50kg of CO₂! Keep going!", Icon: "green-champion"}},
	{Kg: 100, Milestone: Milestone{ID: "first-100", Title: "Eco Warrior", Description: "Saved 100kg of CO₂! Amazing!", Icon: "eco-warrior"}},
	{Kg: 250, Milestone: Milestone{ID: "first-250", Title: "Planet Protector", Description: "Saved 250kg of CO₂! Incredible!", Icon: "planet-protector"}},
}

// LevelUpMilestone announces that level has been reached.
func LevelUpMilestone(level int) Milestone {
	return Milestone{
		ID:          LevelUpMilestoneID,
		Title:       fmt.Sprintf("Level %d Reached!", level),
		Description: "You've leveled up! Keep going!",
		Icon:        "level-up",
	}
}

// CrossedThreshold returns the first threshold with before < kg <= after.
// Higher thresholds crossed by the same jump are not reported.
func CrossedThreshold(before, after float64) (Milestone, bool) {
	for _, t := range Thresholds {
		if before < t.Kg && after >= t.Kg {
			return t.Milestone, true
		}
	}
	return Milestone{}, false
}
