// Package pricing computes per-line and order totals for delivery jobs.
// It is a pure leaf: it never touches the database or mutates its inputs.
package pricing

import (
	"math"

	"landscape-supply-api/models"
)

// PriceType records which price tier priced a line
type PriceType string

const (
	PriceRetail     PriceType = "retail"
	PriceContractor PriceType = "contractor"
)

// Entry is one product's pricing data as the calculator sees it.
// CurrentPrice, when set, is a pre-resolved price (e.g. from the
// per-customer catalog endpoint) and wins over the tier branch.
type Entry struct {
	Name            string
	RetailPrice     float64
	ContractorPrice *float64
	CurrentPrice    *float64
	PriceType       PriceType // only meaningful alongside CurrentPrice
}

// Catalog maps product name to its pricing entry
type Catalog map[string]Entry

// CatalogFromProducts builds a calculator catalog from catalog rows
func CatalogFromProducts(products []models.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.Name] = Entry{
			Name:            p.Name,
			RetailPrice:     p.RetailPrice,
			ContractorPrice: p.ContractorPrice,
		}
	}
	return c
}

// Line is the priced result for one product line
type Line struct {
	UnitPrice  float64
	TotalPrice float64
	PriceType  PriceType
}

// ComputeLine prices a single {product, quantity} line against the catalog.
// contractor selects the contractor tier when the entry carries one.
// prior is the line's existing price type; it is kept when the product is
// not found in the catalog. A quantity that is not a positive finite
// number contributes zero, without error.
func ComputeLine(productName string, quantity float64, catalog Catalog, contractor bool, prior PriceType) Line {
	if prior == "" {
		prior = PriceRetail
	}

	entry, ok := catalog[productName]
	if !ok {
		return Line{UnitPrice: 0, TotalPrice: 0, PriceType: prior}
	}

	line := Line{PriceType: PriceRetail}
	switch {
	case entry.CurrentPrice != nil:
		line.UnitPrice = *entry.CurrentPrice
		if entry.PriceType != "" {
			line.PriceType = entry.PriceType
		}
	case contractor && entry.ContractorPrice != nil:
		line.UnitPrice = *entry.ContractorPrice
		line.PriceType = PriceContractor
	default:
		line.UnitPrice = entry.RetailPrice
	}

	if !(quantity > 0) || math.IsInf(quantity, 0) {
		line.TotalPrice = 0
		return line
	}
	line.TotalPrice = line.UnitPrice * quantity
	return line
}

// OrderTotal sums line totals
func OrderTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.TotalPrice
	}
	return total
}

// Resolve returns the applicable unit price and tier for a catalog row,
// used by the per-customer pricing endpoint to pre-resolve CurrentPrice.
func Resolve(p models.Product, contractor bool) (float64, PriceType) {
	if contractor && p.ContractorPrice != nil {
		return *p.ContractorPrice, PriceContractor
	}
	return p.RetailPrice, PriceRetail
}
