package store

import (
	"encoding/json"
	"time"

	"github.com/storelift/croscan/internal/rules"
)

// StatusPending is the initial status of every persisted recommendation.
// The core never advances status; downstream surfaces do.
const StatusPending = "pending"

// Recommendation is one persisted scan finding.
//
// The JSON field names are the de facto contract with downstream readers
// and must not change. PatchPayload is pre-serialized by the scanner; the
// store treats it as opaque.
type Recommendation struct {
	ID             string                `json:"id"`
	OwnerID        string                `json:"owner_id"`
	EntityType     string                `json:"entity_type"`
	EntityID       string                `json:"entity_id"`
	Category       string                `json:"category"`
	RuleID         string                `json:"rule_id"`
	Severity       string                `json:"severity"`
	Rationale      string                `json:"rationale"`
	ExpectedImpact *rules.ImpactEstimate `json:"expected_impact"`
	PatchPayload   json.RawMessage       `json:"patch_payload"`
	Status         string                `json:"status"`
	Pos            int                   `json:"pos"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
