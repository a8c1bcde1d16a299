package scan

// ThemeContext answers whether a theme block type exists in a layout
// context ("product_page", "page", "global").
//
// Implemented as a capability interface so a real theme introspection
// backend can drop in later without touching the evaluators.
type ThemeContext interface {
	HasBlock(blockType, context string) bool
}

// NoThemeIntrospection is the default ThemeContext: it always answers
// false. Theme Liquid cannot be read in v1, so every block is assumed
// missing and every theme_block_missing rule matches. This is documented
// behavior, not a bug; replacing this implementation changes it.
type NoThemeIntrospection struct{}

// HasBlock always reports the block as absent.
func (NoThemeIntrospection) HasBlock(blockType, context string) bool { return false }

// StaticThemeContext reports exactly the blocks it was given as present.
// Used by tests and by metafield-driven overrides.
type StaticThemeContext struct {
	// Blocks maps "blockType/context" to presence.
	Blocks map[string]bool
}

// HasBlock reports whether blockType was registered for context.
func (s StaticThemeContext) HasBlock(blockType, context string) bool {
	return s.Blocks[blockType+"/"+context]
}
