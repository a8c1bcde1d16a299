// Package catalog defines the read-only snapshot model of a store's
// catalog and the paginated source the scanner streams it from.
//
// The transport behind a Source (Admin API, cache, fixture file) is not
// this package's concern; the scanner only sees ordered pages of products.
package catalog

import "context"

// Product is one catalog entity as fetched for a scan. Snapshots are
// read-only; nothing in the scanner mutates or persists them.
type Product struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Handle          string        `json:"handle"`
	DescriptionHTML string        `json:"descriptionHtml"`
	ProductType     string        `json:"productType"`
	Options         []OptionGroup `json:"options,omitempty"`
	Variants        []Variant     `json:"variants"`
	Images          []Image       `json:"images"`
	Metafields      []Metafield   `json:"metafields,omitempty"`
}

// Variant carries pricing and availability. Prices are decimal strings as
// returned by the upstream API; evaluators parse them and treat malformed
// values as absent.
type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Price            string `json:"price"`
	CompareAtPrice   string `json:"compareAtPrice,omitempty"`
	AvailableForSale bool   `json:"availableForSale"`
}

// Image is one product image with optional alt text.
type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// OptionGroup is one named option axis (e.g. Size) and its values.
type OptionGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Metafield is one namespaced key/value attached to a product.
type Metafield struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Owner identifies the tenant a scan belongs to.
type Owner struct {
	ID     string
	Domain string
}

// Credentials is the opaque access token a Source needs to fetch the
// owner's catalog.
type Credentials struct {
	AccessToken string
}

// OwnerResolver maps an owner id to its identity and credentials.
// Implemented outside the core (shop records, OAuth token storage).
type OwnerResolver interface {
	Resolve(ctx context.Context, ownerID string) (Owner, Credentials, error)
}

// Page is one batch of products plus pagination state.
type Page struct {
	Products []Product
	Cursor   string
	HasMore  bool
}

// Source streams catalog entities page by page.
//
// Iteration contract: the scanner starts with an empty cursor and calls
// FetchPage until a page comes back empty, HasMore is false, or its page
// ceiling is reached. Any error is unrecoverable for the scan.
type Source interface {
	FetchPage(ctx context.Context, owner Owner, creds Credentials, cursor string, pageSize int) (Page, error)
}
