package scan

import (
	"strconv"
	"strings"

	"github.com/storelift/croscan/internal/catalog"
	"github.com/storelift/croscan/internal/rules"
)

// defaultMinDescriptionLength applies when a product_field_empty condition
// on descriptionHtml carries no min_length.
const defaultMinDescriptionLength = 10

// EvalProduct reports whether cond holds for the product.
//
// Dispatch is by concrete condition type. Theme-scoped, reserved
// (copy_quality), and unknown conditions are never product-matchable and
// return false. Malformed entity fields (e.g. unparseable prices) make
// the condition not-matched rather than erroring; a scan never aborts on
// one bad product.
func EvalProduct(cond rules.Condition, p catalog.Product) bool {
	switch c := cond.(type) {
	case rules.CountBelow:
		return evalCountBelow(c, p)
	case rules.ProductFieldEmpty:
		return evalFieldEmpty(c, p)
	case rules.ProductFieldBad:
		return evalFieldBad(c, p)
	default:
		// ThemeBlockMissing, CopyQuality, Unknown: fail closed.
		return false
	}
}

// EvalTheme reports whether cond holds against the theme capability.
// Only theme_block_missing is theme-evaluable; everything else is false.
func EvalTheme(cond rules.Condition, theme ThemeContext) bool {
	c, ok := cond.(rules.ThemeBlockMissing)
	if !ok {
		return false
	}
	return !theme.HasBlock(c.BlockType, c.Context)
}

func evalCountBelow(c rules.CountBelow, p catalog.Product) bool {
	switch c.Field {
	case rules.CountImages:
		return len(p.Images) < c.Threshold
	case rules.CountBullets:
		return bulletCount(p.DescriptionHTML) < c.Threshold
	case rules.CountWords:
		return wordCount(p.DescriptionHTML) < c.Threshold
	default:
		return false
	}
}

func evalFieldEmpty(c rules.ProductFieldEmpty, p catalog.Product) bool {
	switch c.Field {
	case "title":
		return strings.TrimSpace(p.Title) == ""
	case "descriptionHtml":
		min := c.MinLength
		if min <= 0 {
			min = defaultMinDescriptionLength
		}
		return len(stripTags(p.DescriptionHTML)) < min
	default:
		return false
	}
}

func evalFieldBad(c rules.ProductFieldBad, p catalog.Product) bool {
	switch {
	case c.Field == "compare_at_price" && c.Reason == "compare_at_lte_price":
		return anyCompareAtLTEPrice(p.Variants)
	case c.Field == "images_alt" && c.Reason == "missing_alt":
		return anyMissingAlt(p.Images)
	case c.Field == "variant_default" && c.Reason == "no_default":
		return noDefaultVariant(p)
	default:
		return false
	}
}

// anyCompareAtLTEPrice reports whether any variant shows a compare-at
// price numerically <= its price. That renders the "discount" as zero or
// negative, a pricing-display defect.
func anyCompareAtLTEPrice(variants []catalog.Variant) bool {
	for _, v := range variants {
		if v.CompareAtPrice == "" {
			continue
		}
		price, err := strconv.ParseFloat(v.Price, 64)
		if err != nil {
			continue
		}
		compare, err := strconv.ParseFloat(v.CompareAtPrice, 64)
		if err != nil {
			continue
		}
		if compare <= price {
			return true
		}
	}
	return false
}

func anyMissingAlt(images []catalog.Image) bool {
	for _, img := range images {
		if strings.TrimSpace(img.AltText) == "" {
			return true
		}
	}
	return false
}

// noDefaultVariant: more than one variant but no option group defines any
// values. Heuristic for "no default selection configured".
func noDefaultVariant(p catalog.Product) bool {
	if len(p.Variants) <= 1 {
		return false
	}
	for _, o := range p.Options {
		if len(o.Values) > 0 {
			return false
		}
	}
	return true
}
