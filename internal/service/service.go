package service

import (
	"context"

	"github.com/Shriramtantry/task-manager/internal/logger"
	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/repository"
)

// Authorization registers users and checks their credentials.
type Authorization interface {
	Register(ctx context.Context, username, password string) (int, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// Tasks exposes the task operations: create, list by owner, delete by id.
type Tasks interface {
	Create(ctx context.Context, t models.Task) (int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Task, error)
	Delete(ctx context.Context, id int) error
}

// ActivityLog exposes the append-only audit trail with filtering access.
type ActivityLog interface {
	List(ctx context.Context, f ActivityFilter) ([]models.Activity, error)
}

// Health reports whether the store answers.
type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services handed to the HTTP layer.
type Service struct {
	Authorization
	Tasks
	ActivityLog
	Health
}

// NewService wires the repository layer into concrete services. pub may be
// nil when no external event sink is configured.
func NewService(repos *repository.Repository, pub Publisher, log *logger.Logger) *Service {
	activity := NewActivityService(repos.Activity, pub, log)
	return &Service{
		Authorization: NewAuthService(repos.Auth, activity),
		Tasks:         NewTaskService(repos.Tasks, activity),
		ActivityLog:   activity,
		Health:        repos.Health,
	}
}
