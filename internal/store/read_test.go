package store

import (
	"context"
	"testing"
)

func TestListByOwner_Empty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ListByOwner(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}
	if got == nil {
		t.Fatal("ListByOwner() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestListByOwner_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	recs := make([]Recommendation, 5)
	for i := range recs {
		recs[i] = createTestRecommendation("rule", "p")
	}
	if _, err := s.Replace(ctx, "shop-1", recs); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	got, err := s.ListByOwner(ctx, "shop-1", 3)
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	// Limit keeps the top of the ranking, not an arbitrary subset.
	for i, rec := range got {
		if rec.Pos != i {
			t.Errorf("pos[%d] = %d, want %d", i, rec.Pos, i)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	s := createTestStore(t)

	// Re-applying the schema on an existing database must not error.
	if _, err := s.db.Exec(schemaSQL); err != nil {
		t.Fatalf("reapplying schema failed: %v", err)
	}
}
