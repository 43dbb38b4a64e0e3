package focus

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session types
const (
	TypeWork       = "work"
	TypeShortBreak = "short_break"
	TypeLongBreak  = "long_break"
)

type Session struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          string             `json:"userId" bson:"user_id"`
	StartTime       time.Time          `json:"startTime" bson:"start_time"`
	DurationMinutes int                `json:"durationMinutes" bson:"duration_minutes"`
	Completed       bool               `json:"completed" bson:"completed"`
	SessionType     string             `json:"sessionType" bson:"session_type"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
}

type RecordSessionRequest struct {
	StartTime       time.Time `json:"startTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=1"`
	Completed       bool      `json:"completed"`
	SessionType     string    `json:"sessionType"`
}

type UpdateSettingsRequest struct {
	WorkMinutes            int `json:"workMinutes" binding:"required,min=1,max=180"`
	ShortBreakMinutes      int `json:"shortBreakMinutes" binding:"required,min=1,max=60"`
	LongBreakMinutes       int `json:"longBreakMinutes" binding:"required,min=1,max=120"`
	SessionsUntilLongBreak int `json:"sessionsUntilLongBreak" binding:"required,min=1,max=12"`
}
