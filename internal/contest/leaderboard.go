package contest

import (
	"sort"

	"github.com/dsp4life2020-woodz/trippintv/internal/model"
)

type Entry struct {
	Rank    int         `json:"rank"`
	Leading bool        `json:"leading"`
	Video   model.Video `json:"video"`
}

// Stats are computed over every eligible entry, not only the ones returned.
type Stats struct {
	TotalEntries int `json:"total_entries"`
	TotalTrips   int `json:"total_trips"`
	LeadingTrips int `json:"leading_trips"`
}

type Leaderboard struct {
	Entries []Entry `json:"entries"`
	Stats   Stats   `json:"stats"`
}

// Winner is the rank 1 video, if any.
func (l Leaderboard) Winner() (model.Video, bool) {
	if len(l.Entries) == 0 {
		return model.Video{}, false
	}
	return l.Entries[0].Video, true
}

// BuildLeaderboard ranks the eligible videos created inside window.
// A limit of zero or less returns every entry.
func BuildLeaderboard(videos []model.Video, window Window, limit int) Leaderboard {
	eligible := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsContestEligible && window.Contains(v.CreatedAt) {
			eligible = append(eligible, v)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.TripCount != b.TripCount {
			return a.TripCount > b.TripCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	stats := Stats{TotalEntries: len(eligible)}
	for _, v := range eligible {
		stats.TotalTrips += v.TripCount
	}
	if len(eligible) > 0 {
		stats.LeadingTrips = eligible[0].TripCount
	}

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	entries := make([]Entry, len(eligible))
	for i, v := range eligible {
		entries[i] = Entry{Rank: i + 1, Leading: i == 0, Video: v}
	}

	return Leaderboard{Entries: entries, Stats: stats}
}
