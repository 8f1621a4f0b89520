package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// GraphRepo stores versioned serialized-graph snapshots. Rebuilding the
// graph is infrequent and explicit, so snapshots are cheap to keep.
type GraphRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

// Save stores a new graph snapshot.
func (r *GraphRepo) Save(ctx context.Context, raw []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO graph_snapshots (created_at, data) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339), string(raw))
	if err != nil {
		return fmt.Errorf("save graph snapshot: %w", err)
	}
	r.log.Info("graph snapshot saved", zap.Int("bytes", len(raw)))
	return nil
}

// Latest returns the most recent snapshot, or nil if none exist.
func (r *GraphRepo) Latest(ctx context.Context) ([]byte, error) {
	var data string
	err := r.db.GetContext(ctx, &data,
		`SELECT data FROM graph_snapshots ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest graph snapshot: %w", err)
	}
	return []byte(data), nil
}

// Prune deletes all but the keep most recent snapshots.
func (r *GraphRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM graph_snapshots
		WHERE id NOT IN (SELECT id FROM graph_snapshots ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("prune graph snapshots: %w", err)
	}
	return nil
}
