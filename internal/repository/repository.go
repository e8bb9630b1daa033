package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Shriramtantry/task-manager/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t models.Task) (int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Task, error)
	Delete(ctx context.Context, id int) (ownerID int, deleted bool, err error)
}

type ActivityRepo interface {
	Append(ctx context.Context, a models.Activity) error
	List(ctx context.Context, q ActivityQuery) ([]models.Activity, error)
}

// ActivityQuery narrows an activity listing. Zero values mean "no filter".
type ActivityQuery struct {
	From   time.Time
	To     time.Time
	Type   string
	UserID int
}

type Repository struct {
	Auth     Authorization
	Tasks    TaskRepo
	Activity ActivityRepo
	Health   *Health
}

// NewRepository builds every store-backed repository on top of one gateway.
// queryTimeout bounds each statement; zero disables the bound.
func NewRepository(db *sql.DB, queryTimeout time.Duration) *Repository {
	gw := newGateway(db, queryTimeout)
	return &Repository{
		Auth:     NewUserRepository(gw),
		Tasks:    NewTaskRepository(gw),
		Activity: NewActivityRepository(gw),
		Health:   NewHealth(gw),
	}
}
