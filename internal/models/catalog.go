// internal/models/catalog.go
package models

// ProductSummary is one catalog row as surfaced in replies.
type ProductSummary struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Slug  string   `json:"slug"`
	Image string   `json:"image"`
	Price *float64 `json:"price"`
	Qty   int64    `json:"qty,omitempty"`
}

// PriceStats aggregates the effective selling price across the catalog.
type PriceStats struct {
	Count int64   `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Category is a catalog category as surfaced in replies.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
