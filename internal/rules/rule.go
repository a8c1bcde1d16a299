package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EntityKind scopes a rule to the kind of entity it evaluates against.
type EntityKind string

const (
	EntityProduct    EntityKind = "product"
	EntityCollection EntityKind = "collection"
	EntityTheme      EntityKind = "theme"
	EntityGlobal     EntityKind = "global"
)

// Severity is the merchant-facing importance of a rule.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Effort estimates how much work the suggested fix takes.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Risk estimates how likely the suggested fix is to hurt if misapplied.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// PatchType describes what kind of fix would apply. The scanner shapes the
// patch payload from this tag; it never applies fixes itself.
type PatchType string

const (
	PatchThemeBlock          PatchType = "theme_block"
	PatchProductMetafield    PatchType = "product_metafield"
	PatchProductField        PatchType = "product_field"
	PatchMerchantInstruction PatchType = "merchant_instruction"
)

// ImpactEstimate bounds the expected lift on a metric if the fix is applied.
type ImpactEstimate struct {
	Metric string  `yaml:"metric" json:"metric"`
	Low    float64 `yaml:"low" json:"low"`
	High   float64 `yaml:"high" json:"high"`
}

// Rule is one immutable CRO lint rule definition.
//
// Rules are value types: the registry hands out copies and nothing mutates
// them after load. Overlapping conditions are evaluated independently, so
// multiple rules may fire for the same entity.
type Rule struct {
	ID             string
	Category       string
	EntityTypes    []EntityKind
	Severity       Severity
	Title          string
	Description    string
	Condition      Condition
	PatchType      PatchType
	PatchTemplate  map[string]any  // optional, shapes theme-block payloads
	ImpactEstimate *ImpactEstimate // nil when the rule carries no estimate
	Effort         Effort
	Risk           Risk
}

// AppliesTo reports whether the rule's entity-kind set includes kind.
func (r Rule) AppliesTo(kind EntityKind) bool {
	for _, k := range r.EntityTypes {
		if k == kind {
			return true
		}
	}
	return false
}

// TemplateSettings returns the "settings" object of the patch template,
// or an empty map when absent.
func (r Rule) TemplateSettings() map[string]any {
	if r.PatchTemplate == nil {
		return map[string]any{}
	}
	if s, ok := r.PatchTemplate["settings"].(map[string]any); ok {
		return s
	}
	return map[string]any{}
}

// ruleYAML is the on-disk form of a rule. Decoded then converted so the
// public Rule type carries the sealed Condition instead of a yaml.Node.
type ruleYAML struct {
	ID             string            `yaml:"id"`
	Category       string            `yaml:"category"`
	EntityTypes    []EntityKind      `yaml:"entity_types"`
	Severity       Severity          `yaml:"severity"`
	Title          string            `yaml:"title"`
	Description    string            `yaml:"description"`
	Condition      conditionEnvelope `yaml:"condition"`
	PatchType      PatchType         `yaml:"patch_type"`
	PatchTemplate  map[string]any    `yaml:"patch_template"`
	ImpactEstimate *ImpactEstimate   `yaml:"impact_estimate"`
	Effort         Effort            `yaml:"effort"`
	Risk           Risk              `yaml:"risk"`
}

func (y ruleYAML) toRule() Rule {
	return Rule{
		ID:             y.ID,
		Category:       y.Category,
		EntityTypes:    y.EntityTypes,
		Severity:       y.Severity,
		Title:          y.Title,
		Description:    y.Description,
		Condition:      y.Condition.Condition,
		PatchType:      y.PatchType,
		PatchTemplate:  y.PatchTemplate,
		ImpactEstimate: y.ImpactEstimate,
		Effort:         y.Effort,
		Risk:           y.Risk,
	}
}

// decodeRules parses a YAML rule catalog preserving declaration order.
func decodeRules(data []byte) ([]Rule, error) {
	var raw []ruleYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rule catalog: %w", err)
	}

	out := make([]Rule, 0, len(raw))
	for _, y := range raw {
		out = append(out, y.toRule())
	}
	return out, nil
}
