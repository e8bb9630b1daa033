package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shriramtantry/task-manager/internal/models"
)

type UserRepository struct {
	gw *Gateway
}

func NewUserRepository(gw *Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password) VALUES (?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	var id int
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, insertUserSQL, username, passwordHash)
		if err != nil {
			return fmt.Errorf("insert user %q: %w", username, err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id for user %q: %w", username, err)
		}
		id = int(lastID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		u     models.User
		found bool
	)
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, selectUserByUsernameSQL, username).Scan(&u.ID, &u.Username, &u.Password)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("select user %q: %w", username, err)
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}
