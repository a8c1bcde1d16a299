package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConditionKind identifies a condition variant.
type ConditionKind string

const (
	KindThemeBlockMissing ConditionKind = "theme_block_missing"
	KindProductFieldEmpty ConditionKind = "product_field_empty"
	KindCountBelow        ConditionKind = "count_below"
	KindProductFieldBad   ConditionKind = "product_field_bad"
	KindCopyQuality       ConditionKind = "copy_quality"
	KindUnknown           ConditionKind = "unknown"
)

// Condition is the sealed predicate type attached to a rule.
//
// Exactly one struct exists per condition kind. Evaluators dispatch on the
// concrete type; a type switch over all variants plus Unknown is exhaustive.
// New kinds require a new struct here and a new evaluator arm, which keeps
// the dispatch checkable instead of stringly-typed.
type Condition interface {
	Kind() ConditionKind
	isCondition()
}

// ThemeBlockMissing matches when the theme context reports the block type
// absent for the given context. Evaluated against the theme capability,
// not catalog data.
type ThemeBlockMissing struct {
	BlockType string `yaml:"block_type" json:"block_type"`
	Context   string `yaml:"context" json:"context"` // "product_page" | "page" | "global"
}

func (ThemeBlockMissing) Kind() ConditionKind { return KindThemeBlockMissing }
func (ThemeBlockMissing) isCondition()        {}

// ProductFieldEmpty matches when a product text field is empty or shorter
// than MinLength after markup is stripped.
type ProductFieldEmpty struct {
	Field     string `yaml:"field" json:"field"`
	MinLength int    `yaml:"min_length" json:"min_length,omitempty"` // 0 means default (10)
}

func (ProductFieldEmpty) Kind() ConditionKind { return KindProductFieldEmpty }
func (ProductFieldEmpty) isCondition()        {}

// CountField names the countable quantity a CountBelow condition measures.
type CountField string

const (
	CountImages  CountField = "image_count"
	CountBullets CountField = "bullet_count"
	CountWords   CountField = "word_count"
)

// CountBelow matches when the measured count is strictly below Threshold.
type CountBelow struct {
	Field     CountField `yaml:"field" json:"field"`
	Threshold int        `yaml:"threshold" json:"threshold"`
}

func (CountBelow) Kind() ConditionKind { return KindCountBelow }
func (CountBelow) isCondition()        {}

// ProductFieldBad matches a named defect check on a product field, e.g.
// compare-at price not greater than price, or images missing alt text.
// Reason selects the check; unknown reasons never match.
type ProductFieldBad struct {
	Field  string `yaml:"field" json:"field"`
	Reason string `yaml:"reason" json:"reason"`
}

func (ProductFieldBad) Kind() ConditionKind { return KindProductFieldBad }
func (ProductFieldBad) isCondition()        {}

// CopyQuality is reserved for copy scoring checks. It parses and carries
// but never matches in v1.
type CopyQuality struct {
	Check string `yaml:"check" json:"check"`
}

func (CopyQuality) Kind() ConditionKind { return KindCopyQuality }
func (CopyQuality) isCondition()        {}

// Unknown carries an unrecognized condition tag. Evaluators treat it as
// not-matched so a newer catalog never crashes an older scanner.
type Unknown struct {
	Type string `json:"type"`
}

func (Unknown) Kind() ConditionKind { return KindUnknown }
func (Unknown) isCondition()        {}

// conditionEnvelope decodes the tagged YAML form of a condition.
// The "type" field selects the variant; remaining fields decode into it.
type conditionEnvelope struct {
	Condition Condition
}

func (e *conditionEnvelope) UnmarshalYAML(node *yaml.Node) error {
	var tag struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&tag); err != nil {
		return fmt.Errorf("decode condition type: %w", err)
	}

	switch ConditionKind(tag.Type) {
	case KindThemeBlockMissing:
		var c ThemeBlockMissing
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("decode theme_block_missing: %w", err)
		}
		e.Condition = c
	case KindProductFieldEmpty:
		var c ProductFieldEmpty
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("decode product_field_empty: %w", err)
		}
		e.Condition = c
	case KindCountBelow:
		var c CountBelow
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("decode count_below: %w", err)
		}
		e.Condition = c
	case KindProductFieldBad:
		var c ProductFieldBad
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("decode product_field_bad: %w", err)
		}
		e.Condition = c
	case KindCopyQuality:
		var c CopyQuality
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("decode copy_quality: %w", err)
		}
		e.Condition = c
	default:
		e.Condition = Unknown{Type: tag.Type}
	}

	return nil
}
