package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/storelift/croscan/internal/catalog"
	"github.com/storelift/croscan/internal/rules"
	"github.com/storelift/croscan/internal/store"
)

// Scan depth and output ceilings. The page cap bounds worst-case cost of
// one scan; hitting it is not an error, just the documented depth.
const (
	DefaultPageSize = 50
	DefaultMaxPages = 4
	DefaultTopN     = 50
)

// Match is one (rule, entity) pair whose condition held during a scan.
// Never mutated after creation.
type Match struct {
	Rule       rules.Rule
	EntityType rules.EntityKind
	EntityID   string
	Rationale  string
	Patch      PatchPayload // nil for instruction-only suggestions
	Priority   float64
}

// Result is the scan's return value, surfaced through the job facade.
type Result struct {
	RecommendationsCreated int `json:"recommendationsCreated"`
}

// RecommendationStore is the slice of the store the scanner needs:
// the atomic delete-then-insert replace.
type RecommendationStore interface {
	Replace(ctx context.Context, ownerID string, recs []store.Recommendation) (int, error)
}

// Scanner orchestrates one scan: fetch pages, evaluate rules, score,
// rank, truncate, replace the owner's stored recommendations.
//
// A Scanner is stateless across runs and safe for concurrent use for
// different owners. Concurrent runs for the same owner are not excluded
// here; the job layer decides whether to admit them.
type Scanner struct {
	registry *rules.Registry
	resolver catalog.OwnerResolver
	source   catalog.Source
	recs     RecommendationStore
	theme    ThemeContext
	pageSize int
	maxPages int
	topN     int
	logger   *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithPageSize overrides the catalog page size.
func WithPageSize(n int) Option {
	return func(s *Scanner) { s.pageSize = n }
}

// WithMaxPages overrides the scan-depth ceiling.
func WithMaxPages(n int) Option {
	return func(s *Scanner) { s.maxPages = n }
}

// WithTopN overrides how many ranked matches are persisted.
func WithTopN(n int) Option {
	return func(s *Scanner) { s.topN = n }
}

// WithThemeContext replaces the default no-introspection theme context.
func WithThemeContext(tc ThemeContext) Option {
	return func(s *Scanner) { s.theme = tc }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner with defaults: page size 50, page cap 4, top 50,
// no theme introspection.
func New(reg *rules.Registry, resolver catalog.OwnerResolver, source catalog.Source, recs RecommendationStore, opts ...Option) *Scanner {
	s := &Scanner{
		registry: reg,
		resolver: resolver,
		source:   source,
		recs:     recs,
		theme:    NoThemeIntrospection{},
		pageSize: DefaultPageSize,
		maxPages: DefaultMaxPages,
		topN:     DefaultTopN,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one scan for the owner and returns the number of
// recommendations persisted.
//
// Any unrecoverable error (owner resolution, catalog fetch, store
// replace) aborts the run with no store mutation; there is no partial
// success. A catalog page returning zero entities ends pagination early.
func (s *Scanner) Run(ctx context.Context, ownerID string) (Result, error) {
	owner, creds, err := s.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return Result{}, fmt.Errorf("scan %s: resolve owner: %w", ownerID, err)
	}

	products, err := s.fetchProducts(ctx, owner, creds)
	if err != nil {
		return Result{}, fmt.Errorf("scan %s: %w", ownerID, err)
	}
	s.logger.Info("catalog fetched", "owner", ownerID, "products", len(products))

	matches := s.evaluateProducts(products)
	matches = append(matches, s.evaluateGlobals()...)
	s.logger.Info("rules evaluated", "owner", ownerID, "matches", len(matches))

	// Stable sort: equal scores keep evaluation order (registry order over
	// products in fetch order, then global rules).
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority > matches[j].Priority
	})
	if len(matches) > s.topN {
		matches = matches[:s.topN]
	}

	recs, err := buildRecommendations(matches)
	if err != nil {
		return Result{}, fmt.Errorf("scan %s: %w", ownerID, err)
	}

	created, err := s.recs.Replace(ctx, ownerID, recs)
	if err != nil {
		return Result{}, fmt.Errorf("scan %s: replace recommendations: %w", ownerID, err)
	}

	s.logger.Info("scan complete", "owner", ownerID, "created", created)
	return Result{RecommendationsCreated: created}, nil
}

// fetchProducts streams pages until the source is exhausted or the page
// ceiling is reached.
func (s *Scanner) fetchProducts(ctx context.Context, owner catalog.Owner, creds catalog.Credentials) ([]catalog.Product, error) {
	var products []catalog.Product
	cursor := ""
	for page := 0; page < s.maxPages; page++ {
		p, err := s.source.FetchPage(ctx, owner, creds, cursor, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if len(p.Products) == 0 {
			break
		}
		products = append(products, p.Products...)
		if !p.HasMore {
			break
		}
		cursor = p.Cursor
	}
	return products, nil
}

// evaluateProducts runs every product-scoped rule over every product, in
// registry order, and returns the matches with priorities assigned.
func (s *Scanner) evaluateProducts(products []catalog.Product) []Match {
	var matches []Match
	for _, rule := range s.registry.All() {
		if !rule.AppliesTo(rules.EntityProduct) {
			continue
		}
		if rule.Condition.Kind() == rules.KindUnknown {
			s.logger.Warn("rule has unrecognized condition, skipping", "rule", rule.ID)
			continue
		}
		for _, p := range products {
			if !EvalProduct(rule.Condition, p) {
				continue
			}
			matches = append(matches, Match{
				Rule:       rule,
				EntityType: rules.EntityProduct,
				EntityID:   p.ID,
				Rationale:  rule.Description,
				Patch:      productPatch(rule, p),
				Priority:   Priority(rule, ImpactMid(rule)),
			})
		}
	}
	return matches
}

// evaluateGlobals runs the global-scoped theme rules once per scan.
func (s *Scanner) evaluateGlobals() []Match {
	var matches []Match
	for _, rule := range s.registry.All() {
		if !rule.AppliesTo(rules.EntityGlobal) {
			continue
		}
		if rule.Condition.Kind() != rules.KindThemeBlockMissing {
			continue
		}
		if !EvalTheme(rule.Condition, s.theme) {
			continue
		}
		matches = append(matches, Match{
			Rule:       rule,
			EntityType: rules.EntityGlobal,
			EntityID:   "theme",
			Rationale:  rule.Description,
			Patch:      globalPatch(rule),
			Priority:   Priority(rule, ImpactMid(rule)),
		})
	}
	return matches
}

// buildRecommendations converts ranked matches into store rows, with the
// patch payload serialized to its contract JSON shape.
func buildRecommendations(matches []Match) ([]store.Recommendation, error) {
	recs := make([]store.Recommendation, 0, len(matches))
	for _, m := range matches {
		var payload json.RawMessage
		if m.Patch != nil {
			b, err := json.Marshal(m.Patch)
			if err != nil {
				return nil, fmt.Errorf("marshal patch payload for rule %s: %w", m.Rule.ID, err)
			}
			payload = b
		}
		recs = append(recs, store.Recommendation{
			EntityType:     string(m.EntityType),
			EntityID:       m.EntityID,
			Category:       m.Rule.Category,
			RuleID:         m.Rule.ID,
			Severity:       string(m.Rule.Severity),
			Rationale:      m.Rationale,
			ExpectedImpact: m.Rule.ImpactEstimate,
			PatchPayload:   payload,
			Status:         store.StatusPending,
		})
	}
	return recs, nil
}
