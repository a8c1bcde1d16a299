package scan

import (
	"github.com/storelift/croscan/internal/catalog"
	"github.com/storelift/croscan/internal/rules"
)

// Metafield coordinates for scanner-suggested content.
const (
	metafieldNamespace = "conversion_optimizer"
	metafieldKeyBullet = "benefit_bullets"
)

// PatchPayload is the structured fix suggestion attached to a match.
// One variant exists per patch type; instruction-only rules carry nil.
// The JSON field names are the contract with downstream readers.
type PatchPayload interface {
	PatchType() rules.PatchType
}

// ThemeBlockPatch suggests adding a theme block.
type ThemeBlockPatch struct {
	Type          string         `json:"type"` // always "theme_block"
	Target        string         `json:"target"`
	BlockType     string         `json:"block_type"`
	Settings      map[string]any `json:"settings"`
	PlacementHint string         `json:"placement_hint,omitempty"`
}

func (ThemeBlockPatch) PatchType() rules.PatchType { return rules.PatchThemeBlock }

// MetafieldPatch suggests writing a product metafield.
type MetafieldPatch struct {
	Type      string   `json:"type"` // always "product_metafield"
	ProductID string   `json:"product_id"`
	Namespace string   `json:"namespace"`
	Key       string   `json:"key"`
	ValueType string   `json:"value_type"`
	Value     []string `json:"value"`
}

func (MetafieldPatch) PatchType() rules.PatchType { return rules.PatchProductMetafield }

// FieldEditPatch suggests editing a product field directly.
type FieldEditPatch struct {
	Type      string `json:"type"` // always "product_field"
	ProductID string `json:"product_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

func (FieldEditPatch) PatchType() rules.PatchType { return rules.PatchProductField }

// productPatch shapes the payload for a product-scoped match. Returns nil
// for instruction-only rules and for theme-block rules without a template,
// matching the original scanner's behavior.
func productPatch(r rules.Rule, p catalog.Product) PatchPayload {
	switch r.PatchType {
	case rules.PatchThemeBlock:
		if r.PatchTemplate == nil {
			return nil
		}
		blockType := ""
		if c, ok := r.Condition.(rules.ThemeBlockMissing); ok {
			blockType = c.BlockType
		}
		return ThemeBlockPatch{
			Type:      string(rules.PatchThemeBlock),
			Target:    "product_page",
			BlockType: blockType,
			Settings:  r.TemplateSettings(),
		}
	case rules.PatchProductMetafield:
		return MetafieldPatch{
			Type:      string(rules.PatchProductMetafield),
			ProductID: p.ID,
			Namespace: metafieldNamespace,
			Key:       metafieldKeyBullet,
			ValueType: "list.single_line_text_field",
			Value:     []string{},
		}
	case rules.PatchProductField:
		return FieldEditPatch{
			Type:      string(rules.PatchProductField),
			ProductID: p.ID,
			Field:     "descriptionHtml",
			Value:     "",
		}
	default:
		return nil
	}
}

// globalPatch shapes the payload for a global theme match. Always a theme
// block suggestion targeted at the condition's context, with a placement
// hint for the theme editor.
func globalPatch(r rules.Rule) PatchPayload {
	c, ok := r.Condition.(rules.ThemeBlockMissing)
	if !ok {
		return nil
	}
	return ThemeBlockPatch{
		Type:          string(rules.PatchThemeBlock),
		Target:        c.Context,
		BlockType:     c.BlockType,
		Settings:      r.TemplateSettings(),
		PlacementHint: "above_add_to_cart",
	}
}
