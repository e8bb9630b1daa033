package models

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"task_description"`
	Completed   bool   `json:"is_completed"`
	UserID      int    `json:"user_id"`
}
