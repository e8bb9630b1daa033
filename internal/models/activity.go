package models

import "time"

// Activity types recorded by the services.
const (
	ActivityUserRegistered = "USER_REGISTERED"
	ActivityUserLoggedIn   = "USER_LOGGED_IN"
	ActivityTaskCreated    = "TASK_CREATED"
	ActivityTaskDeleted    = "TASK_DELETED"
)

// Activity is a single append-only audit entry.
type Activity struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"`
	UserID     int       `json:"user_id,omitempty"`
	Message    string    `json:"message"`
	Metadata   any       `json:"metadata,omitempty"`
}
