package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/karim/itqan/internal/strength"
)

// StrengthRepo persists per-item strength records keyed by item id.
type StrengthRepo struct {
	db *sqlx.DB
}

type strengthRow struct {
	ItemID        string `db:"item_id"`
	Score         int    `db:"score"`
	LastPracticed string `db:"last_practiced"`
	ProvenMastery bool   `db:"proven_mastery"`
}

func (r strengthRow) toRecord() (strength.Record, error) {
	rec := strength.Record{
		ItemID:        r.ItemID,
		Score:         r.Score,
		ProvenMastery: r.ProvenMastery,
	}
	if r.LastPracticed != "" {
		t, err := time.Parse(time.RFC3339, r.LastPracticed)
		if err != nil {
			return rec, fmt.Errorf("parse last_practiced for %s: %w", r.ItemID, err)
		}
		rec.LastPracticed = t
	}
	return rec, nil
}

func rowFromRecord(rec strength.Record) strengthRow {
	row := strengthRow{
		ItemID:        rec.ItemID,
		Score:         rec.Score,
		ProvenMastery: rec.ProvenMastery,
	}
	if !rec.LastPracticed.IsZero() {
		row.LastPracticed = rec.LastPracticed.UTC().Format(time.RFC3339)
	}
	return row
}

// Upsert writes a record, replacing any existing row for the item.
func (r *StrengthRepo) Upsert(ctx context.Context, rec strength.Record) error {
	row := rowFromRecord(rec)
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO item_strength (item_id, score, last_practiced, proven_mastery)
		VALUES (:item_id, :score, :last_practiced, :proven_mastery)
		ON CONFLICT(item_id) DO UPDATE SET
			score = excluded.score,
			last_practiced = excluded.last_practiced,
			proven_mastery = excluded.proven_mastery`,
		row)
	if err != nil {
		return fmt.Errorf("upsert strength for %s: %w", rec.ItemID, err)
	}
	return nil
}

// UpsertAll writes a batch of records in one transaction.
func (r *StrengthRepo) UpsertAll(ctx context.Context, recs []strength.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		row := rowFromRecord(rec)
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO item_strength (item_id, score, last_practiced, proven_mastery)
			VALUES (:item_id, :score, :last_practiced, :proven_mastery)
			ON CONFLICT(item_id) DO UPDATE SET
				score = excluded.score,
				last_practiced = excluded.last_practiced,
				proven_mastery = excluded.proven_mastery`,
			row); err != nil {
			return fmt.Errorf("upsert strength for %s: %w", rec.ItemID, err)
		}
	}
	return tx.Commit()
}

// Get returns the record for an item, or nil if the item has never
// been practiced.
func (r *StrengthRepo) Get(ctx context.Context, itemID string) (*strength.Record, error) {
	var row strengthRow
	err := r.db.GetContext(ctx, &row,
		`SELECT item_id, score, last_practiced, proven_mastery FROM item_strength WHERE item_id = ?`,
		itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get strength for %s: %w", itemID, err)
	}
	rec, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// All returns every stored record, ordered by item id.
func (r *StrengthRepo) All(ctx context.Context) ([]strength.Record, error) {
	var rows []strengthRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT item_id, score, last_practiced, proven_mastery FROM item_strength ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("list strength records: %w", err)
	}
	recs := make([]strength.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Reset deletes every strength record. External reset only.
func (r *StrengthRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM item_strength`); err != nil {
		return fmt.Errorf("reset strength: %w", err)
	}
	return nil
}
