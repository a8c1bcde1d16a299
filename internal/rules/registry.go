package rules

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed rules.yaml
var catalogYAML []byte

//go:embed schema.cue
var schemaCUE string

// Registry is the ordered, read-only catalog of rule definitions.
//
// Load it once at process start. Declaration order in rules.yaml is the
// registry order and never changes after construction; match ordering
// guarantees in the scanner depend on it.
type Registry struct {
	rules []Rule
	byID  map[string]int
}

// Load parses and validates the embedded rule catalog.
//
// The YAML is validated against the CUE schema before decoding, so a
// malformed catalog fails fast with a schema-level error instead of a
// zero-valued rule surfacing mid-scan. Duplicate rule IDs are rejected.
func Load() (*Registry, error) {
	return load(catalogYAML)
}

func load(data []byte) (*Registry, error) {
	if err := validateCatalog(data); err != nil {
		return nil, fmt.Errorf("rule catalog schema: %w", err)
	}

	rs, err := decodeRules(data)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, fmt.Errorf("rule catalog is empty")
	}

	byID := make(map[string]int, len(rs))
	for i, r := range rs {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		byID[r.ID] = i
	}

	return &Registry{rules: rs, byID: byID}, nil
}

// validateCatalog checks the raw YAML against the embedded CUE schema.
func validateCatalog(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	catalog := schema.LookupPath(cue.ParsePath("#Catalog"))
	if err := catalog.Err(); err != nil {
		return fmt.Errorf("lookup #Catalog: %w", err)
	}

	return cueyaml.Validate(data, catalog)
}

// All returns every rule in registry order. The returned slice is a copy;
// callers may reorder it freely.
func (reg *Registry) All() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// ByCategory returns the rules tagged with category, in registry order.
func (reg *Registry) ByCategory(category string) []Rule {
	var out []Rule
	for _, r := range reg.rules {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// ByID returns the rule with the given id, or ok=false.
func (reg *Registry) ByID(id string) (Rule, bool) {
	i, ok := reg.byID[id]
	if !ok {
		return Rule{}, false
	}
	return reg.rules[i], true
}

// Len returns the number of rules in the registry.
func (reg *Registry) Len() int {
	return len(reg.rules)
}
