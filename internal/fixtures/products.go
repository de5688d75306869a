package fixtures

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TestProduct is a catalog entry. Slug is the natural key: the database may
// assign a different id than the fixture suggests, and upserts key on slug.
//
// Inventory is the desired total stock. The storefront computes available
// stock by summing inventory batches, not by reading this field, so a
// product without a seeded batch is visible but not purchasable.
type TestProduct struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Inventory   int
}

// Clone returns a deep copy.
func (p TestProduct) Clone() TestProduct {
	// decimal.Decimal is immutable; the shallow copy is already deep.
	return p
}

var products = []TestProduct{
	{
		ID:          "fixture-prod-creatine",
		Slug:        "creatine-monohydrate-500g",
		Name:        "Creatine Monohydrate 500g",
		Description: "Micronized creatine monohydrate, unflavored.",
		Category:    "PERFORMANCE",
		Price:       decimal.RequireFromString("29.99"),
		Inventory:   250,
	},
	{
		ID:          "fixture-prod-omega3",
		Slug:        "omega-3-fish-oil-180",
		Name:        "Omega-3 Fish Oil, 180 softgels",
		Description: "Triple-strength EPA/DHA fish oil.",
		Category:    "ESSENTIALS",
		Price:       decimal.RequireFromString("34.50"),
		Inventory:   120,
	},
	{
		ID:          "fixture-prod-vitd3",
		Slug:        "vitamin-d3-5000iu",
		Name:        "Vitamin D3 5000 IU",
		Description: "High-potency cholecalciferol with MCT oil.",
		Category:    "ESSENTIALS",
		Price:       decimal.RequireFromString("14.25"),
		Inventory:   400,
	},
	{
		ID:          "fixture-prod-whey",
		Slug:        "whey-protein-isolate-2lb",
		Name:        "Whey Protein Isolate 2lb",
		Description: "Cold-filtered whey isolate, vanilla.",
		Category:    "PERFORMANCE",
		Price:       decimal.RequireFromString("54.99"),
		Inventory:   75,
	},
	{
		ID:          "fixture-prod-magnesium",
		Slug:        "magnesium-glycinate-120",
		Name:        "Magnesium Glycinate, 120 caps",
		Description: "Chelated magnesium for sleep and recovery.",
		Category:    "ESSENTIALS",
		Price:       decimal.RequireFromString("22.00"),
		// Deliberately out of stock: zero inventory means zero batches, and
		// the out-of-stock specs depend on that.
		Inventory: 0,
	},
	{
		ID:          "fixture-prod-nmn",
		Slug:        "nmn-250mg-60",
		Name:        "NMN 250mg, 60 caps",
		Description: "Pharmaceutical-grade nicotinamide mononucleotide.",
		Category:    "LONGEVITY",
		Price:       decimal.RequireFromString("89.95"),
		Inventory:   30,
	},
}

// Products returns every catalog product.
func Products() []TestProduct {
	out := make([]TestProduct, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// ProductBySlug looks up a product by its natural key.
func ProductBySlug(slug string) (TestProduct, error) {
	for _, p := range products {
		if p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return TestProduct{}, fmt.Errorf("fixtures: no product with slug %q", slug)
}

// OutOfStockProduct returns the product seeded with zero inventory.
func OutOfStockProduct() TestProduct {
	for _, p := range products {
		if p.Inventory == 0 {
			return p.Clone()
		}
	}
	// the catalog always carries one; reaching here is an authoring bug
	panic("fixtures: catalog has no zero-inventory product")
}
