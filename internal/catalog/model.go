package catalog

import "time"

// Product is one catalog entry.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	ProductType    string    `json:"product_type"`
	SkinType       string    `json:"skintype"`
	NotableEffects string    `json:"notable_effects"`
	Price          int64     `json:"price"`
	Description    string    `json:"description"`
	PictureURL     string    `json:"picture"`
	CreatedAt      time.Time `json:"created"`
}

// Filter holds the facet values of a catalog query. Values within a facet
// are ORed, facets are ANDed, and the price range is inclusive.
type Filter struct {
	SkinTypes      []string
	ProductTypes   []string
	Brands         []string
	NotableEffects []string
	MinPrice       *int64
	MaxPrice       *int64
}
