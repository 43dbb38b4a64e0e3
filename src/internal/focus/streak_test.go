package focus

import (
	"studysphere-svc/src/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func sessionAt(t time.Time, completed bool) Session {
	return Session{
		StartTime:       t,
		DurationMinutes: 25,
		Completed:       completed,
		SessionType:     TypeWork,
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestComputeStreaksEmptyInput(t *testing.T) {
	streaks, err := ComputeStreaks(nil, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, streaks.CurrentStreak)
	assert.Equal(t, 0, streaks.LongestStreak)
}

func TestComputeStreaksSingleDay(t *testing.T) {
	sessions := []Session{sessionAt(testNow, true)}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.CurrentStreak)
	assert.Equal(t, 1, streaks.LongestStreak)
}

func TestComputeStreaksThreeConsecutiveDays(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(0), true),
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(2), true),
	}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 3, streaks.CurrentStreak)
	assert.Equal(t, 3, streaks.LongestStreak)
}

func TestComputeStreaksStopsAtGap(t *testing.T) {
	// T and T-1 qualify, T-2 does not, T-3 does.
	sessions := []Session{
		sessionAt(daysAgo(0), true),
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(2), false),
		sessionAt(daysAgo(3), true),
	}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, streaks.CurrentStreak)
	assert.Equal(t, 2, streaks.LongestStreak)
}

func TestComputeStreaksMissedTodayDoesNotBreakStreak(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(2), true),
	}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, streaks.CurrentStreak)
}

func TestComputeStreaksOldActivityOnly(t *testing.T) {
	// Completed only five days ago: current streak is gone, longest remains.
	sessions := []Session{sessionAt(daysAgo(5), true)}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, streaks.CurrentStreak)
	assert.Equal(t, 1, streaks.LongestStreak)
}

func TestComputeStreaksLongestRunInHistory(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(0), true),
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(7), true),
		sessionAt(daysAgo(8), true),
		sessionAt(daysAgo(9), true),
		sessionAt(daysAgo(10), true),
	}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, streaks.CurrentStreak)
	assert.Equal(t, 4, streaks.LongestStreak)
}

func TestComputeStreaksIncompleteSessionsDoNotQualify(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(0), false),
		sessionAt(daysAgo(1), false),
	}

	streaks, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, streaks.CurrentStreak)
	assert.Equal(t, 0, streaks.LongestStreak)
}

func TestComputeStreaksRejectsZeroStartTime(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(0), true),
		{Completed: true},
	}

	_, err := ComputeStreaks(sessions, testNow, time.UTC)
	assert.ErrorIs(t, err, models.ErrInvalidSessionTime)
}

func TestComputeStreaksTimezoneDayBoundary(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:59 and 00:01 local time straddle a New York midnight but fall on
	// the same UTC day (EST is UTC-5).
	sessions := []Session{
		sessionAt(time.Date(2025, time.January, 10, 4, 59, 0, 0, time.UTC), true), // Jan 9 23:59 in NY
		sessionAt(time.Date(2025, time.January, 10, 5, 1, 0, 0, time.UTC), true),  // Jan 10 00:01 in NY
	}
	now := time.Date(2025, time.January, 10, 23, 0, 0, 0, time.UTC)

	inNY, err := ComputeStreaks(sessions, now, newYork)
	require.NoError(t, err)
	assert.Equal(t, 2, inNY.CurrentStreak, "two local days in New York")

	inUTC, err := ComputeStreaks(sessions, now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, inUTC.CurrentStreak, "one day when bucketed in UTC")
}

func TestComputeStreaksIdempotent(t *testing.T) {
	sessions := []Session{
		sessionAt(daysAgo(0), true),
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(4), true),
	}

	first, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	second, err := ComputeStreaks(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeStats(t *testing.T) {
	morning := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	sessions := []Session{
		sessionAt(morning, true),
		sessionAt(testNow, true),
		sessionAt(daysAgo(1), true),
		sessionAt(daysAgo(1).Add(time.Hour), false),
	}

	stats, err := ComputeStats(sessions, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalSessions)
	assert.Equal(t, 3, stats.CompletedSessions)
	assert.Equal(t, 2, stats.CompletedToday)
	assert.Equal(t, 75, stats.TotalFocusMinutes)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStatsEmptyInput(t *testing.T) {
	stats, err := ComputeStats(nil, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
}
