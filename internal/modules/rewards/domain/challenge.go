package domain

import "time"

// Today is what the user did since local midnight.
type Today struct {
	// ItemsByCategory counts detections per material category (Plastic, Metal...).
	ItemsByCategory map[string]int
	CO2Saved        float64
}

type Challenge struct {
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

type challengeRule struct {
	id, title, description, icon string
	target                       float64
	reward                       int
	measure                      func(Today) float64
}

func itemsOf(category string) func(Today) float64 {
	return func(t Today) float64 { return float64(t.ItemsByCategory[category]) }
}

var challengeRules = []challengeRule{
	{"daily-1", "Plastic Hunter", "Detect 5 plastic items", "package", 5, 50, itemsOf("Plastic")},
	{"daily-2", "Metal Master", "Detect 3 metal items", "box", 3, 40, itemsOf("Metal")},
	{"daily-3", "CO₂ Champion", "Save 10kg of CO₂ today", "leaf", 10, 75, func(t Today) float64 { return t.CO2Saved }},
}

// DailyChallenges evaluates today's challenges. Progress is capped at the
// target; every challenge expires at expiresAt.
func DailyChallenges(today Today, expiresAt time.Time) []Challenge {
	out := make([]Challenge, 0, len(challengeRules))
	for _, r := range challengeRules {
		progress := r.measure(today)
		out = append(out, Challenge{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Icon:        r.icon,
			Progress:    min(progress, r.target),
			Target:      r.target,
			Reward:      r.reward,
			Completed:   progress >= r.target,
			ExpiresAt:   expiresAt,
		})
	}
	return out
}
