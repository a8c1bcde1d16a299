package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ListByOwner returns the owner's recommendations in ranked order
// (pos ASC). limit <= 0 means no limit.
//
// Returns an empty slice (not nil) when the owner has no recommendations.
func (s *Store) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Recommendation, error) {
	query := `
		SELECT id, owner_id, entity_type, entity_id, category, rule_id, severity,
		       rationale, expected_impact, patch_payload, status, pos, created_at, updated_at
		FROM recommendations
		WHERE owner_id = ?
		ORDER BY pos ASC`
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	recs := []Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}

	return recs, nil
}

// CountByOwner returns how many recommendations the owner currently has.
func (s *Store) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendations WHERE owner_id = ?`, ownerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count recommendations: %w", err)
	}
	return n, nil
}

func scanRecommendation(rows *sql.Rows) (Recommendation, error) {
	var (
		rec                  Recommendation
		impactRaw            sql.NullString
		payloadRaw           sql.NullString
		createdAt, updatedAt string
	)

	if err := rows.Scan(
		&rec.ID, &rec.OwnerID, &rec.EntityType, &rec.EntityID, &rec.Category,
		&rec.RuleID, &rec.Severity, &rec.Rationale, &impactRaw, &payloadRaw,
		&rec.Status, &rec.Pos, &createdAt, &updatedAt,
	); err != nil {
		return Recommendation{}, fmt.Errorf("scan recommendation: %w", err)
	}

	if impactRaw.Valid {
		est, err := unmarshalImpact([]byte(impactRaw.String))
		if err != nil {
			return Recommendation{}, err
		}
		rec.ExpectedImpact = est
	}
	if payloadRaw.Valid {
		rec.PatchPayload = json.RawMessage(payloadRaw.String)
	}

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Recommendation{}, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Recommendation{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return rec, nil
}
