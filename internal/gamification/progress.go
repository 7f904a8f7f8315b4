package gamification

import (
	"sort"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/util"
)

// NewProgress is the starting state for a user who has never played
func NewProgress() domain.UserProgress {
	return domain.UserProgress{Level: 1}
}

// LevelForPoints maps total points to a level, starting at 1
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return 1 + points/PointsPerLevel
}

// ApplyProgress folds newly completed challenges into the user's progress and
// recomputes streaks from the daily entries.
func ApplyProgress(p domain.UserProgress, completed []*domain.Challenge, entries []*domain.DailyEntry, now time.Time) domain.UserProgress {
	for _, c := range completed {
		p.TotalPoints += c.Points
		p.ChallengesCompleted++
	}
	p.Level = LevelForPoints(p.TotalPoints)

	current, longest, last := Streaks(entries, now)
	p.CurrentStreak = current
	if longest > p.LongestStreak {
		p.LongestStreak = longest
	}
	if last != nil {
		p.LastActivityDate = last
	}
	return p
}

// Streaks computes the current and longest run of consecutive days with a daily
// entry. The current streak counts only when the latest entry is today or yesterday.
func Streaks(entries []*domain.DailyEntry, now time.Time) (current, longest int, last *time.Time) {
	if len(entries) == 0 {
		return 0, 0, nil
	}

	seen := make(map[time.Time]bool, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		d := util.CivilDay(e.Date)
		if d.After(util.CivilDay(now)) || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0, 0, nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	latest := days[len(days)-1]
	gap := util.CivilDay(now).Sub(latest)
	if gap <= 24*time.Hour {
		current = run
	}
	return current, longest, &latest
}
