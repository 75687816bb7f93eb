package report

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devmarvs/csphead/apperr"
)

// PgxStore persists reports in PostgreSQL.
type PgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore wraps an existing pool.
func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

// NewPool connects to databaseURL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, apperr.InvalidArgument("parse database url", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, apperr.Internal("create pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperr.Internal("ping database", err)
	}
	return pool, nil
}

// CreateSchema creates the reports table when missing.
func (s *PgxStore) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS csp_reports (
			id           TEXT PRIMARY KEY,
			received_at  TIMESTAMPTZ NOT NULL,
			user_agent   TEXT NOT NULL DEFAULT '',
			remote_addr  TEXT NOT NULL DEFAULT '',
			document_uri TEXT NOT NULL DEFAULT '',
			blocked_uri  TEXT NOT NULL DEFAULT '',
			directive    TEXT NOT NULL DEFAULT '',
			body         JSONB NOT NULL
		)
	`)
	if err != nil {
		return apperr.Internal("create csp_reports table", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS csp_reports_received_at_idx
		ON csp_reports (received_at DESC)
	`)
	if err != nil {
		return apperr.Internal("create csp_reports index", err)
	}
	return nil
}

// Save stores a report.
func (s *PgxStore) Save(ctx context.Context, r Received) error {
	body, err := sonic.Marshal(r.Body)
	if err != nil {
		return apperr.Internal("encode report body", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO csp_reports (id, received_at, user_agent, remote_addr, document_uri, blocked_uri, directive, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.ReceivedAt, r.UserAgent, r.RemoteAddr, r.Body.DocumentURI, r.Body.BlockedURI, r.Body.Directive(), body)
	if err != nil {
		return apperr.Internal("insert report", err)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *PgxStore) Recent(ctx context.Context, limit int) ([]Received, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, received_at, user_agent, remote_addr, body
		FROM csp_reports
		ORDER BY received_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, apperr.Internal("query reports", err)
	}
	defer rows.Close()

	var out []Received
	for rows.Next() {
		var r Received
		var body []byte
		if err := rows.Scan(&r.ID, &r.ReceivedAt, &r.UserAgent, &r.RemoteAddr, &body); err != nil {
			return nil, apperr.Internal("scan report", err)
		}
		if err := sonic.Unmarshal(body, &r.Body); err != nil {
			return nil, apperr.Internal("decode report body", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("iterate reports", err)
	}
	return out, nil
}

// Count returns the number of stored reports.
func (s *PgxStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM csp_reports`).Scan(&count); err != nil {
		return 0, apperr.Internal("count reports", err)
	}
	return count, nil
}

// Prune deletes reports received more than olderThan ago and returns the
// number removed.
func (s *PgxStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM csp_reports
		WHERE received_at < $1
	`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, apperr.Internal("prune reports", err)
	}
	return tag.RowsAffected(), nil
}
