package catalog

import (
	"context"
	"strings"
	"testing"
)

func int64p(v int64) *int64 { return &v }

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Hydra Gel", Brand: "Glow", ProductType: "Moisturizer", SkinType: "Oily, Sensitive", NotableEffects: "Hydrating", Price: 85000},
		{ID: "2", Name: "Deep Cream", Brand: "Derma", ProductType: "Moisturizer", SkinType: "Dry", NotableEffects: "Brightening", Price: 120000},
		{ID: "3", Name: "Foam Wash", Brand: "Glow", ProductType: "Facial Wash", SkinType: "Oily", NotableEffects: "Acne-Free", Price: 45000},
		{ID: "4", Name: "Night Serum", Brand: "Pure", ProductType: "Serum", SkinType: "Normal", NotableEffects: "Anti-Aging", Price: 150000},
	}
}

func TestListOrWithinFacetAndAcrossFacets(t *testing.T) {
	repo := NewMemoryRepository(sampleProducts()...)

	// skintype in {Oily, Dry} AND price <= 100000.
	products, err := repo.List(context.Background(), Filter{
		SkinTypes: []string{"Oily", "Dry"},
		MaxPrice:  int64p(100000),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	for _, p := range products {
		skin := strings.ToLower(p.SkinType)
		if !strings.Contains(skin, "oily") && !strings.Contains(skin, "dry") {
			t.Fatalf("product %s does not intersect the skin-type facet", p.ID)
		}
		if p.Price > 100000 {
			t.Fatalf("product %s exceeds max_price", p.ID)
		}
	}
}

func TestListNoFilterReturnsEverything(t *testing.T) {
	repo := NewMemoryRepository(sampleProducts()...)
	products, err := repo.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("expected all 4 products, got %d", len(products))
	}
}

func TestListPriceRangeInclusive(t *testing.T) {
	repo := NewMemoryRepository(sampleProducts()...)
	products, err := repo.List(context.Background(), Filter{MinPrice: int64p(45000), MaxPrice: int64p(45000)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].ID != "3" {
		t.Fatalf("expected only the 45000 product, got %+v", products)
	}
}

func TestBuildListQueryParameterizesFacetValues(t *testing.T) {
	// Hostile facet values must end up as bind arguments, never in the SQL text.
	hostile := `Oily" || (1=1) --`
	query, args := buildListQuery(Filter{
		SkinTypes:    []string{hostile, "Dry"},
		ProductTypes: []string{"Serum"},
		MinPrice:     int64p(10000),
		MaxPrice:     int64p(99999),
	})

	if strings.Contains(query, hostile) {
		t.Fatalf("facet value interpolated into query text: %s", query)
	}
	for _, placeholder := range []string{"$1", "$2", "$3", "$4", "$5", "$6"} {
		if !strings.Contains(query, placeholder) {
			t.Fatalf("expected placeholder %s in query: %s", placeholder, query)
		}
	}
	// 3 facet values + 2 price bounds + page limit.
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d: %v", len(args), args)
	}
	if args[0] != hostile {
		t.Fatalf("expected hostile value bound as first arg, got %v", args[0])
	}
	if !strings.Contains(query, "skintype ILIKE") || !strings.Contains(query, "product_type ILIKE") {
		t.Fatalf("unexpected query shape: %s", query)
	}
	if !strings.Contains(query, ") AND (") && !strings.Contains(query, "AND price") {
		t.Fatalf("facets not ANDed: %s", query)
	}
}

func TestBuildListQueryEscapesLikeWildcards(t *testing.T) {
	// A bound "%" would otherwise match the whole table.
	_, args := buildListQuery(Filter{
		SkinTypes: []string{"%", "under_score", `back\slash`},
	})

	if len(args) != 4 {
		t.Fatalf("expected 3 facet args plus limit, got %d: %v", len(args), args)
	}
	want := []string{`\%`, `under\_score`, `back\\slash`}
	for i, w := range want {
		if args[i] != w {
			t.Fatalf("arg %d: expected %q, got %v", i, w, args[i])
		}
	}
}
