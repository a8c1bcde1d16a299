package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeCondition(t *testing.T, src string) Condition {
	t.Helper()
	var env conditionEnvelope
	require.NoError(t, yaml.Unmarshal([]byte(src), &env))
	return env.Condition
}

func TestConditionDecode_ThemeBlockMissing(t *testing.T) {
	c := decodeCondition(t, `{type: theme_block_missing, block_type: faq, context: product_page}`)
	cond, ok := c.(ThemeBlockMissing)
	require.True(t, ok)
	assert.Equal(t, "faq", cond.BlockType)
	assert.Equal(t, "product_page", cond.Context)
}

func TestConditionDecode_ProductFieldEmpty(t *testing.T) {
	c := decodeCondition(t, `{type: product_field_empty, field: descriptionHtml, min_length: 20}`)
	cond, ok := c.(ProductFieldEmpty)
	require.True(t, ok)
	assert.Equal(t, "descriptionHtml", cond.Field)
	assert.Equal(t, 20, cond.MinLength)
}

func TestConditionDecode_CountBelow(t *testing.T) {
	c := decodeCondition(t, `{type: count_below, field: word_count, threshold: 100}`)
	cond, ok := c.(CountBelow)
	require.True(t, ok)
	assert.Equal(t, CountWords, cond.Field)
	assert.Equal(t, 100, cond.Threshold)
}

func TestConditionDecode_ProductFieldBad(t *testing.T) {
	c := decodeCondition(t, `{type: product_field_bad, field: compare_at_price, reason: compare_at_lte_price}`)
	cond, ok := c.(ProductFieldBad)
	require.True(t, ok)
	assert.Equal(t, "compare_at_lte_price", cond.Reason)
}

func TestConditionDecode_CopyQuality(t *testing.T) {
	c := decodeCondition(t, `{type: copy_quality, check: reading_level}`)
	cond, ok := c.(CopyQuality)
	require.True(t, ok)
	assert.Equal(t, "reading_level", cond.Check)
}

func TestConditionDecode_UnknownTag(t *testing.T) {
	// Unrecognized tags decode as Unknown rather than failing, so a newer
	// catalog format degrades to not-matched instead of crashing the load.
	c := decodeCondition(t, `{type: sentiment_score, threshold: 0.5}`)
	cond, ok := c.(Unknown)
	require.True(t, ok)
	assert.Equal(t, "sentiment_score", cond.Type)
	assert.Equal(t, KindUnknown, cond.Kind())
}
