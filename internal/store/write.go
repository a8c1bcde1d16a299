package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Replace atomically swaps the owner's recommendations for the given
// ranked set: delete everything for the owner, then insert recs in order,
// all in one transaction. A failure anywhere rolls the whole replace back,
// so readers never observe a partial mix of old and new rows.
//
// Row ids, timestamps, pos, and a default status are assigned here; any
// values the caller set on those fields are ignored except a non-empty
// Status. Returns the number of rows inserted.
func (s *Store) Replace(ctx context.Context, ownerID string, recs []Recommendation) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace recommendations: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recommendations WHERE owner_id = ?`, ownerID,
	); err != nil {
		return 0, fmt.Errorf("replace recommendations: delete: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recommendations
		(id, owner_id, entity_type, entity_id, category, rule_id, severity,
		 rationale, expected_impact, patch_payload, status, pos, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("replace recommendations: prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().Format(time.RFC3339Nano)
	for i, rec := range recs {
		impact, err := marshalImpact(rec.ExpectedImpact)
		if err != nil {
			return 0, fmt.Errorf("replace recommendations: %w", err)
		}

		status := rec.Status
		if status == "" {
			status = StatusPending
		}

		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			ownerID,
			rec.EntityType,
			rec.EntityID,
			rec.Category,
			rec.RuleID,
			rec.Severity,
			rec.Rationale,
			impact,
			marshalPayload(rec.PatchPayload),
			status,
			i,
			now,
			now,
		); err != nil {
			return 0, fmt.Errorf("replace recommendations: insert pos %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace recommendations: commit: %w", err)
	}

	return len(recs), nil
}

// DeleteAllForOwner removes every recommendation for the owner and
// returns the number of rows deleted.
func (s *Store) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recommendations WHERE owner_id = ?`, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete recommendations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete recommendations: rows affected: %w", err)
	}
	return n, nil
}
