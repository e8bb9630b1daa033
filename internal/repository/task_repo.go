package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shriramtantry/task-manager/internal/models"
)

type TaskRepository struct {
	gw *Gateway
}

func NewTaskRepository(gw *Gateway) *TaskRepository {
	return &TaskRepository{gw: gw}
}

var _ TaskRepo = (*TaskRepository)(nil)

const (
	insertTaskSQL        = `INSERT INTO tasks (task_description, is_completed, user_id) VALUES (?, ?, ?)`
	selectTasksByUserSQL = `SELECT id, task_description, is_completed, user_id FROM tasks WHERE user_id = ? ORDER BY id`
	selectTaskOwnerSQL   = `SELECT user_id FROM tasks WHERE id = ?`
	deleteTaskSQL        = `DELETE FROM tasks WHERE id = ?`
)

// Create inserts a task as not completed. The owner is not checked here;
// the store's foreign key, when enforced, is the only guard.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) (int, error) {
	var id int
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, insertTaskSQL, t.Description, false, t.UserID)
		if err != nil {
			return fmt.Errorf("insert task for user %d: %w", t.UserID, err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id for task: %w", err)
		}
		id = int(lastID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListByUser returns the user's tasks in insertion order; never nil.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int) ([]models.Task, error) {
	out := make([]models.Task, 0)
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectTasksByUserSQL, userID)
		if err != nil {
			return fmt.Errorf("select tasks for user %d: %w", userID, err)
		}
		defer rows.Close()

		for rows.Next() {
			var t models.Task
			if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.UserID); err != nil {
				return fmt.Errorf("scan task row: %w", err)
			}
			out = append(out, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate task rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the task and reports its owner and whether a row matched.
// Under concurrent deletes of one id only a single caller sees deleted=true.
func (r *TaskRepository) Delete(ctx context.Context, id int) (int, bool, error) {
	var (
		owner   int
		deleted bool
	)
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, selectTaskOwnerSQL, id).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select owner of task %d: %w", id, err)
		}

		res, err := conn.ExecContext(ctx, deleteTaskSQL, id)
		if err != nil {
			return fmt.Errorf("delete task %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for task %d: %w", id, err)
		}
		deleted = n > 0
		return nil
	})
	if err != nil || !deleted {
		return 0, false, err
	}
	return owner, true, nil
}
