package service

import "time"

// ActivityFilter supports history filtering by time range, type and owner.
type ActivityFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "USER_REGISTERED", "USER_LOGGED_IN", "TASK_CREATED", "TASK_DELETED"
	UserID int       // zero means any user
}
