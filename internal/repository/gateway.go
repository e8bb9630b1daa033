package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Gateway hands out one pooled connection per call and always gives it back.
type Gateway struct {
	db      *sql.DB
	timeout time.Duration
}

func newGateway(db *sql.DB, timeout time.Duration) *Gateway {
	return &Gateway{db: db, timeout: timeout}
}

// NewGateway is exported for tests and tools that need a bare gateway.
func NewGateway(db *sql.DB, timeout time.Duration) *Gateway {
	return newGateway(db, timeout)
}

// withConn runs fn on a dedicated connection bounded by the gateway timeout.
// The connection is released on every exit path, including panics in fn.
func (g *Gateway) withConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return fn(ctx, conn)
}

// Health reports store reachability.
type Health struct {
	gw *Gateway
}

func NewHealth(gw *Gateway) *Health { return &Health{gw: gw} }

func (h *Health) Ping(ctx context.Context) error {
	return h.gw.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}
