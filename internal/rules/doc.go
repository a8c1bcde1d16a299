// Package rules defines the CRO lint rule catalog.
//
// This package contains the rule data model and the static registry. All
// other internal packages import rules; rules imports nothing internal.
// This keeps the catalog the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Rules are loaded once at process start and never mutated
//   - Condition is a closed sum type (sealed interface, one struct per kind)
//   - Unknown condition tags load as Unknown and never match (fail-closed)
//   - The embedded catalog is validated against a CUE schema at load
package rules
