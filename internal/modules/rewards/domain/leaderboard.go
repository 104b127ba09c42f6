package domain

import "sort"

type Entry struct {
	ID       string
	Name     string
	Avatar   string
	CO2Saved float64
	Rank     int
	IsUser   bool
}

// Rank orders the user and rivals by CO2 saved, descending, and numbers them
// from 1. The user is placed first before the stable sort, so ties favour
// the user.
func Rank(user Entry, rivals []Entry) []Entry {
	user.IsUser = true
	out := make([]Entry, 0, len(rivals)+1)
	out = append(out, user)
	for _, r := range rivals {
		r.IsUser = false
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CO2Saved > out[j].CO2Saved })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// UserRank returns the rank of the user entry, 0 when absent.
func UserRank(entries []Entry) int {
	for _, e := range entries {
		if e.IsUser {
			return e.Rank
		}
	}
	return 0
}
