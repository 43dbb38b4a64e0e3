package models

// FocusStats is the aggregate view of a user's focus history. Streaks count
// consecutive calendar days with at least one completed session.
type FocusStats struct {
	TotalSessions     int `json:"totalSessions"`
	CompletedSessions int `json:"completedSessions"`
	CompletedToday    int `json:"completedToday"`
	TotalFocusMinutes int `json:"totalFocusMinutes"`
	CurrentStreak     int `json:"currentStreak"`
	LongestStreak     int `json:"longestStreak"`
}

// FocusSettings holds per-user timer preferences. Stored durably and keyed
// by user id; defaults apply until the user saves their own.
type FocusSettings struct {
	UserID                 string `json:"userId" bson:"user_id"`
	WorkMinutes            int    `json:"workMinutes" bson:"work_minutes"`
	ShortBreakMinutes      int    `json:"shortBreakMinutes" bson:"short_break_minutes"`
	LongBreakMinutes       int    `json:"longBreakMinutes" bson:"long_break_minutes"`
	SessionsUntilLongBreak int    `json:"sessionsUntilLongBreak" bson:"sessions_until_long_break"`
}

// DefaultFocusSettings returns the timer defaults used before a user saves
// their own preferences.
func DefaultFocusSettings(userID string) *FocusSettings {
	return &FocusSettings{
		UserID:                 userID,
		WorkMinutes:            25,
		ShortBreakMinutes:      5,
		LongBreakMinutes:       15,
		SessionsUntilLongBreak: 4,
	}
}
