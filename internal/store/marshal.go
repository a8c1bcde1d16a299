package store

import (
	"encoding/json"
	"fmt"

	"github.com/storelift/croscan/internal/rules"
)

// Nullable JSON column helpers. SQLite stores expected_impact and
// patch_payload as TEXT; nil maps to SQL NULL, never to the string "null".

func marshalImpact(est *rules.ImpactEstimate) (any, error) {
	if est == nil {
		return nil, nil
	}
	b, err := json.Marshal(est)
	if err != nil {
		return nil, fmt.Errorf("marshal expected_impact: %w", err)
	}
	return string(b), nil
}

func unmarshalImpact(raw []byte) (*rules.ImpactEstimate, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var est rules.ImpactEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return nil, fmt.Errorf("unmarshal expected_impact: %w", err)
	}
	return &est, nil
}

func marshalPayload(payload json.RawMessage) any {
	if len(payload) == 0 {
		return nil
	}
	return string(payload)
}
