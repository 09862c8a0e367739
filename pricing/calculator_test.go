package pricing

import (
	"testing"

	"landscape-supply-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func testCatalog() Catalog {
	return Catalog{
		"Mulch":       {Name: "Mulch", RetailPrice: 40, ContractorPrice: floatPtr(36)},
		"Topsoil":     {Name: "Topsoil", RetailPrice: 32},
		"Straw Bales": {Name: "Straw Bales"}, // price never entered, defaults to 0
	}
}

func TestComputeLineRetail(t *testing.T) {
	line := ComputeLine("Mulch", 3, testCatalog(), false, PriceRetail)

	assert.Equal(t, 40.0, line.UnitPrice)
	assert.InDelta(t, 120.0, line.TotalPrice, 1e-6)
	assert.Equal(t, PriceRetail, line.PriceType)
}

func TestComputeLineContractor(t *testing.T) {
	line := ComputeLine("Mulch", 3, testCatalog(), true, PriceRetail)

	assert.Equal(t, 36.0, line.UnitPrice)
	assert.InDelta(t, 108.0, line.TotalPrice, 1e-6)
	assert.Equal(t, PriceContractor, line.PriceType)
}

func TestComputeLineContractorWithoutContractorPrice(t *testing.T) {
	// Contractor customer, but Topsoil has no contractor tier: retail applies
	line := ComputeLine("Topsoil", 2, testCatalog(), true, PriceRetail)

	assert.Equal(t, 32.0, line.UnitPrice)
	assert.InDelta(t, 64.0, line.TotalPrice, 1e-6)
	assert.Equal(t, PriceRetail, line.PriceType)
}

func TestComputeLineExactProduct(t *testing.T) {
	for _, tc := range []struct {
		qty, price float64
	}{
		{1, 40}, {0.5, 40}, {3.25, 17.99}, {1000, 0.01},
	} {
		catalog := Catalog{"X": {Name: "X", RetailPrice: tc.price}}
		line := ComputeLine("X", tc.qty, catalog, false, PriceRetail)
		assert.InDelta(t, tc.price*tc.qty, line.TotalPrice, 1e-6)
	}
}

func TestComputeLineNonPositiveQuantity(t *testing.T) {
	catalog := testCatalog()

	for _, qty := range []float64{0, -1, -0.01} {
		line := ComputeLine("Mulch", qty, catalog, false, PriceRetail)
		assert.Zero(t, line.TotalPrice, "quantity %v must contribute nothing", qty)
	}
}

func TestComputeLineProductNotFound(t *testing.T) {
	// Unknown product zeroes the prices but keeps the prior price type
	line := ComputeLine("Gravel", 5, testCatalog(), false, PriceContractor)

	assert.Zero(t, line.UnitPrice)
	assert.Zero(t, line.TotalPrice)
	assert.Equal(t, PriceContractor, line.PriceType)
}

func TestComputeLineMissingPriceDefaultsToZero(t *testing.T) {
	line := ComputeLine("Straw Bales", 4, testCatalog(), false, PriceRetail)

	assert.Zero(t, line.UnitPrice)
	assert.Zero(t, line.TotalPrice)
}

func TestComputeLinePreResolvedCurrentPrice(t *testing.T) {
	catalog := Catalog{
		"Mulch": {
			Name:         "Mulch",
			RetailPrice:  40,
			CurrentPrice: floatPtr(36),
			PriceType:    PriceContractor,
		},
	}

	// CurrentPrice wins even when the contractor flag is off
	line := ComputeLine("Mulch", 3, catalog, false, PriceRetail)
	assert.Equal(t, 36.0, line.UnitPrice)
	assert.InDelta(t, 108.0, line.TotalPrice, 1e-6)
	assert.Equal(t, PriceContractor, line.PriceType)
}

func TestComputeLineIdempotent(t *testing.T) {
	catalog := testCatalog()

	first := ComputeLine("Mulch", 3, catalog, true, PriceRetail)
	second := ComputeLine("Mulch", 3, catalog, true, PriceRetail)
	assert.Equal(t, first, second)

	// and the catalog itself is untouched
	assert.Equal(t, testCatalog(), catalog)
}

func TestOrderTotal(t *testing.T) {
	catalog := testCatalog()
	lines := []Line{
		ComputeLine("Mulch", 3, catalog, false, PriceRetail),
		ComputeLine("Topsoil", 2, catalog, false, PriceRetail),
		ComputeLine("Gravel", 5, catalog, false, PriceRetail), // unknown, contributes 0
	}

	assert.InDelta(t, 120+64, OrderTotal(lines), 1e-6)
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.Zero(t, OrderTotal(nil))
}

func TestCatalogFromProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Mulch", Unit: models.UnitYards, RetailPrice: 40, ContractorPrice: floatPtr(36)},
		{Name: "Topsoil", Unit: models.UnitYards, RetailPrice: 32},
	}

	catalog := CatalogFromProducts(products)
	require.Len(t, catalog, 2)
	assert.Equal(t, 40.0, catalog["Mulch"].RetailPrice)
	require.NotNil(t, catalog["Mulch"].ContractorPrice)
	assert.Equal(t, 36.0, *catalog["Mulch"].ContractorPrice)
	assert.Nil(t, catalog["Topsoil"].ContractorPrice)
}

func TestResolve(t *testing.T) {
	mulch := models.Product{Name: "Mulch", RetailPrice: 40, ContractorPrice: floatPtr(36)}
	topsoil := models.Product{Name: "Topsoil", RetailPrice: 32}

	price, priceType := Resolve(mulch, true)
	assert.Equal(t, 36.0, price)
	assert.Equal(t, PriceContractor, priceType)

	price, priceType = Resolve(mulch, false)
	assert.Equal(t, 40.0, price)
	assert.Equal(t, PriceRetail, priceType)

	price, priceType = Resolve(topsoil, true)
	assert.Equal(t, 32.0, price)
	assert.Equal(t, PriceRetail, priceType)
}
