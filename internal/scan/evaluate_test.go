package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storelift/croscan/internal/catalog"
	"github.com/storelift/croscan/internal/rules"
)

func TestEvalProduct_CountBelow(t *testing.T) {
	p := catalog.Product{
		DescriptionHTML: "<p>Great shoes for running and walking every single day of the week</p>",
		Images:          []catalog.Image{{ID: "img-1"}},
	}

	assert.True(t, EvalProduct(rules.CountBelow{Field: rules.CountWords, Threshold: 100}, p),
		"12 words below threshold 100")
	assert.False(t, EvalProduct(rules.CountBelow{Field: rules.CountWords, Threshold: 12}, p),
		"threshold is strictly below")
	assert.True(t, EvalProduct(rules.CountBelow{Field: rules.CountImages, Threshold: 3}, p))
	assert.False(t, EvalProduct(rules.CountBelow{Field: rules.CountImages, Threshold: 1}, p))
	assert.True(t, EvalProduct(rules.CountBelow{Field: rules.CountBullets, Threshold: 2}, p))
	assert.False(t, EvalProduct(rules.CountBelow{Field: "unknown_field", Threshold: 1}, p),
		"unknown count field fails closed")
}

func TestEvalProduct_FieldEmpty(t *testing.T) {
	assert.True(t, EvalProduct(rules.ProductFieldEmpty{Field: "title"}, catalog.Product{Title: "   "}))
	assert.False(t, EvalProduct(rules.ProductFieldEmpty{Field: "title"}, catalog.Product{Title: "Tee"}))

	short := catalog.Product{DescriptionHTML: "<p>short</p>"}
	assert.True(t, EvalProduct(rules.ProductFieldEmpty{Field: "descriptionHtml"}, short),
		"default min length 10 applies")
	assert.False(t, EvalProduct(rules.ProductFieldEmpty{Field: "descriptionHtml", MinLength: 3}, short))

	assert.False(t, EvalProduct(rules.ProductFieldEmpty{Field: "vendor"}, catalog.Product{}),
		"unknown field fails closed")
}

func TestEvalProduct_CompareAtLTEPrice(t *testing.T) {
	bad := catalog.Product{Variants: []catalog.Variant{
		{Price: "20.00", CompareAtPrice: "15.00"},
	}}
	good := catalog.Product{Variants: []catalog.Variant{
		{Price: "20.00", CompareAtPrice: "25.00"},
	}}
	cond := rules.ProductFieldBad{Field: "compare_at_price", Reason: "compare_at_lte_price"}

	// 15 <= 20 renders the discount wrong: a display defect.
	assert.True(t, EvalProduct(cond, bad))
	assert.False(t, EvalProduct(cond, good))

	equal := catalog.Product{Variants: []catalog.Variant{{Price: "20.00", CompareAtPrice: "20.00"}}}
	assert.True(t, EvalProduct(cond, equal), "equal compare-at is also a defect")

	noCompare := catalog.Product{Variants: []catalog.Variant{{Price: "20.00"}}}
	assert.False(t, EvalProduct(cond, noCompare))

	// Any single defective variant is enough.
	mixed := catalog.Product{Variants: []catalog.Variant{
		{Price: "20.00", CompareAtPrice: "30.00"},
		{Price: "20.00", CompareAtPrice: "10.00"},
	}}
	assert.True(t, EvalProduct(cond, mixed))

	// Malformed prices are treated as absent, never as errors.
	malformed := catalog.Product{Variants: []catalog.Variant{{Price: "n/a", CompareAtPrice: "15.00"}}}
	assert.False(t, EvalProduct(cond, malformed))
}

func TestEvalProduct_MissingAlt(t *testing.T) {
	cond := rules.ProductFieldBad{Field: "images_alt", Reason: "missing_alt"}

	assert.True(t, EvalProduct(cond, catalog.Product{Images: []catalog.Image{
		{AltText: "Blue jacket front view"},
		{AltText: "  "},
	}}), "any image without alt text matches")

	assert.False(t, EvalProduct(cond, catalog.Product{Images: []catalog.Image{
		{AltText: "front"}, {AltText: "back"},
	}}))

	assert.False(t, EvalProduct(cond, catalog.Product{}), "no images, nothing missing")
}

func TestEvalProduct_NoDefaultVariant(t *testing.T) {
	cond := rules.ProductFieldBad{Field: "variant_default", Reason: "no_default"}

	twoNoOptions := catalog.Product{
		Variants: []catalog.Variant{{ID: "v1"}, {ID: "v2"}},
		Options:  []catalog.OptionGroup{{Name: "Title"}},
	}
	assert.True(t, EvalProduct(cond, twoNoOptions))

	withValues := catalog.Product{
		Variants: []catalog.Variant{{ID: "v1"}, {ID: "v2"}},
		Options:  []catalog.OptionGroup{{Name: "Size", Values: []string{"S", "M"}}},
	}
	assert.False(t, EvalProduct(cond, withValues))

	single := catalog.Product{Variants: []catalog.Variant{{ID: "v1"}}}
	assert.False(t, EvalProduct(cond, single), "single variant needs no default")
}

func TestEvalProduct_UnmatchableKinds(t *testing.T) {
	p := catalog.Product{Title: "Tee"}

	assert.False(t, EvalProduct(rules.ThemeBlockMissing{BlockType: "faq", Context: "product_page"}, p),
		"theme conditions are not product-matchable")
	assert.False(t, EvalProduct(rules.CopyQuality{Check: "reading_level"}, p),
		"copy_quality is reserved and never matches")
	assert.False(t, EvalProduct(rules.Unknown{Type: "sentiment_score"}, p),
		"unknown conditions fail closed")
	assert.False(t, EvalProduct(rules.ProductFieldBad{Field: "x", Reason: "y"}, p),
		"unknown defect reason fails closed")
}

func TestEvalTheme(t *testing.T) {
	cond := rules.ThemeBlockMissing{BlockType: "trust_guarantee", Context: "product_page"}

	// The default context cannot introspect themes: every block is
	// reported missing, so the condition always matches.
	assert.True(t, EvalTheme(cond, NoThemeIntrospection{}))

	present := StaticThemeContext{Blocks: map[string]bool{"trust_guarantee/product_page": true}}
	assert.False(t, EvalTheme(cond, present))
	assert.True(t, EvalTheme(rules.ThemeBlockMissing{BlockType: "faq", Context: "product_page"}, present))

	assert.False(t, EvalTheme(rules.CountBelow{Field: rules.CountWords, Threshold: 1}, NoThemeIntrospection{}),
		"only theme_block_missing is theme-evaluable")
}
