package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/storelift/croscan/internal/testutil"
)

// fixedNow is the deterministic timestamp used by test stores.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// createTestStore creates a file-backed store in a temp dir with a fixed clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(testutil.NewClock(fixedNow).Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecommendation builds a recommendation with minimal required fields.
func createTestRecommendation(ruleID, entityID string) Recommendation {
	return Recommendation{
		EntityType: "product",
		EntityID:   entityID,
		Category:   "copy",
		RuleID:     ruleID,
		Severity:   "medium",
		Rationale:  "test rationale",
	}
}
