package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// StaticSource serves a fixed product list in pages. Used by tests and by
// the CLI's fixture path; behaves like the real paginated API, including
// cursor handling and the has-more flag.
type StaticSource struct {
	Products []Product

	// Err, when set, is returned by every FetchPage call. Lets tests
	// exercise the unrecoverable-fetch path.
	Err error
}

// LoadFixture reads a JSON product array from disk into a StaticSource.
func LoadFixture(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &StaticSource{Products: products}, nil
}

// StaticResolver resolves any owner id to itself with no credentials.
// Pairs with StaticSource, which ignores credentials anyway.
type StaticResolver struct{}

// Resolve returns an owner whose domain is the id itself.
func (StaticResolver) Resolve(_ context.Context, ownerID string) (Owner, Credentials, error) {
	return Owner{ID: ownerID, Domain: ownerID}, Credentials{}, nil
}

// FetchPage returns the page starting at the numeric cursor (offset).
// An empty cursor means the first page.
func (s *StaticSource) FetchPage(_ context.Context, _ Owner, _ Credentials, cursor string, pageSize int) (Page, error) {
	if s.Err != nil {
		return Page{}, s.Err
	}
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return Page{}, fmt.Errorf("bad cursor %q: %w", cursor, err)
		}
		offset = n
	}

	if offset >= len(s.Products) {
		return Page{}, nil
	}

	end := offset + pageSize
	if end > len(s.Products) {
		end = len(s.Products)
	}

	return Page{
		Products: s.Products[offset:end],
		Cursor:   strconv.Itoa(end),
		HasMore:  end < len(s.Products),
	}, nil
}
