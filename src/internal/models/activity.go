package models

import "time"

type ActivityMessage struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Service   string            `json:"service_name"`
	Action    string            `json:"action"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionUserRegistered  = "user_registered"
	ActionUserLoggedIn    = "user_logged_in"
	ActionPasswordChanged = "password_changed"
	ActionAIGeneration    = "ai_generation"
)

// Service name constants
const (
	ServiceAuthHandler = "studysphere.handler.auth"
	ServiceUserHandler = "studysphere.handler.user"
	ServiceAIHandler   = "studysphere.handler.ai"
)
