// Package scan implements the scan pipeline: stream the catalog, evaluate
// every applicable rule, score the matches, and replace the owner's stored
// recommendations with the ranked top N.
//
// Evaluation is fail-closed per entity: a malformed field or an
// unrecognized condition means "no match", never an aborted scan. Only the
// catalog source and the persistence replace step can fail a run.
//
// Determinism: given the same catalog snapshot and rule set, a scan emits
// a byte-for-byte identical ranked result. Matches are generated in rule
// registry order over products in fetch order, global theme rules last;
// the final sort is stable, so equal scores keep that order.
package scan
