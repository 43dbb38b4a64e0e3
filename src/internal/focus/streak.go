package focus

import (
	"sort"
	"studysphere-svc/src/internal/models"
	"time"
)

// Streaks holds the consecutive-day completion metrics.
type Streaks struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// ComputeStreaks turns an unordered slice of focus sessions into calendar-day
// streak metrics. Day boundaries are taken in loc; a day qualifies when at
// least one session that day is completed.
//
// The current streak walks backwards from today. A day with no completed
// session strictly before today ends the streak; a missed *today* alone does
// not, so a streak kept alive through yesterday still counts until the gap
// grows past one day. The longest streak is a plain maximum-run scan over
// all qualifying days with no gap tolerance.
//
// The function performs no I/O and holds no state between calls. A session
// with a zero start time is a precondition violation and is rejected rather
// than silently bucketed.
func ComputeStreaks(sessions []Session, now time.Time, loc *time.Location) (Streaks, error) {
	qualifying, err := qualifyingDays(sessions, loc)
	if err != nil {
		return Streaks{}, err
	}
	if len(qualifying) == 0 {
		return Streaks{}, nil
	}

	return Streaks{
		CurrentStreak: currentStreak(qualifying, dayOf(now, loc)),
		LongestStreak: longestStreak(qualifying),
	}, nil
}

// ComputeStats builds the full aggregate view: period totals plus streaks.
func ComputeStats(sessions []Session, now time.Time, loc *time.Location) (*models.FocusStats, error) {
	streaks, err := ComputeStreaks(sessions, now, loc)
	if err != nil {
		return nil, err
	}

	stats := &models.FocusStats{
		TotalSessions: len(sessions),
		CurrentStreak: streaks.CurrentStreak,
		LongestStreak: streaks.LongestStreak,
	}

	today := dayOf(now, loc)
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		stats.CompletedSessions++
		stats.TotalFocusMinutes += s.DurationMinutes
		if dayOf(s.StartTime, loc).Equal(today) {
			stats.CompletedToday++
		}
	}

	return stats, nil
}

// qualifyingDays buckets sessions by calendar day in loc and keeps the days
// with at least one completed session.
func qualifyingDays(sessions []Session, loc *time.Location) (map[time.Time]bool, error) {
	days := make(map[time.Time]bool)
	for _, s := range sessions {
		if s.StartTime.IsZero() {
			return nil, models.ErrInvalidSessionTime
		}
		if s.Completed {
			days[dayOf(s.StartTime, loc)] = true
		}
	}
	return days, nil
}

// dayOf truncates t to its calendar day in loc. The result is normalized to
// UTC midnight so day arithmetic is plain AddDate.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func currentStreak(qualifying map[time.Time]bool, today time.Time) int {
	day := today
	if !qualifying[day] {
		// Not having completed anything today does not break the streak;
		// the walk starts at yesterday instead.
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for qualifying[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func longestStreak(qualifying map[time.Time]bool) int {
	days := make([]time.Time, 0, len(qualifying))
	for day := range qualifying {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
