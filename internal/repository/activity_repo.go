package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Shriramtantry/task-manager/internal/models"

	"github.com/google/uuid"
)

type ActivityRepository struct {
	gw *Gateway
}

func NewActivityRepository(gw *Gateway) *ActivityRepository { return &ActivityRepository{gw: gw} }

var _ ActivityRepo = (*ActivityRepository)(nil)

const (
	insertActivitySQL = `INSERT INTO activity_log (id, occurred_at, type, user_id, message, meta) VALUES (?, ?, ?, ?, ?, ?)`
	selectActivitySQL = `SELECT id, occurred_at, type, user_id, message, meta FROM activity_log`
)

// Append inserts a new entry. If ID or OccurredAt are empty, they're set.
func (r *ActivityRepository) Append(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}
	// microsecond precision fits both sqlite text timestamps and mysql DATETIME(6)
	occurred := a.OccurredAt.UTC().Truncate(time.Microsecond)

	var metaPtr *string
	if a.Metadata != nil {
		if b, err := json.Marshal(a.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	return r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, insertActivitySQL,
			a.ID,
			occurred,
			strings.ToUpper(strings.TrimSpace(a.Type)),
			a.UserID,
			a.Message,
			metaPtr,
		)
		if err != nil {
			return fmt.Errorf("insert activity %s: %w", a.Type, err)
		}
		return nil
	})
}

// buildActivityQuery renders the filtered SELECT and its arguments.
func buildActivityQuery(q ActivityQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC())
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if q.UserID > 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, q.UserID)
	}

	query := selectActivitySQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at ASC"
	return query, args
}

// List returns entries matching q ordered by time ascending.
func (r *ActivityRepository) List(ctx context.Context, q ActivityQuery) ([]models.Activity, error) {
	query, args := buildActivityQuery(q)

	out := make([]models.Activity, 0, 16)
	err := r.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("select activity: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				a       models.Activity
				metaStr sql.NullString
			)
			if err := rows.Scan(&a.ID, &a.OccurredAt, &a.Type, &a.UserID, &a.Message, &metaStr); err != nil {
				return fmt.Errorf("scan activity row: %w", err)
			}
			a.OccurredAt = a.OccurredAt.UTC()

			if metaStr.Valid && metaStr.String != "" {
				var v any
				if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
					a.Metadata = v
				} else {
					a.Metadata = metaStr.String // keep raw if malformed
				}
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
