package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func sampleProducts() []models.Product {
	day := func(n int) time.Time {
		return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
	}
	return []models.Product{
		{ID: "1", Name: "MEN BOXERS", Category: "Men", Price: models.N(2500), SoldCount: models.N(120), CreatedAt: day(3), InStock: true, TotalStock: 10},
		{ID: "2", Name: "WOMEN CAMISOLE", Category: "Women", Price: models.N(3200), SoldCount: models.N(40), CreatedAt: day(7), InStock: true, TotalStock: 5},
		{ID: "3", Name: "CHILDREN PANTS", Category: "Children", Price: models.N(1500), SoldCount: models.N(300), CreatedAt: day(1), InStock: false, TotalStock: 0},
		{ID: "4", Name: "MEN T-SHIRT", Category: "Men", Price: models.N(4100), SoldCount: models.N(75), CreatedAt: day(5), InStock: true, TotalStock: 2},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterCategory(t *testing.T) {
	got := Filter{Category: "men"}.Apply(sampleProducts())
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestFilterGenderMapping(t *testing.T) {
	// Male routes to the Men category, Female to Women.
	assert.Equal(t, []string{"1", "4"}, ids(Filter{Gender: "Male"}.Apply(sampleProducts())))
	assert.Equal(t, []string{"2"}, ids(Filter{Gender: "female"}.Apply(sampleProducts())))
}

func TestFilterProductTypeAndSearch(t *testing.T) {
	assert.Equal(t, []string{"1"}, ids(Filter{ProductType: "boxers"}.Apply(sampleProducts())))
	assert.Equal(t, []string{"2"}, ids(Filter{Search: "camisole"}.Apply(sampleProducts())))
	assert.Empty(t, Filter{Search: "no such product"}.Apply(sampleProducts()))
}

func TestFilterInStockOnly(t *testing.T) {
	got := Filter{InStockOnly: true}.Apply(sampleProducts())
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestFilterCombined(t *testing.T) {
	got := Filter{Category: "Men", Search: "t-shirt", InStockOnly: true}.Apply(sampleProducts())
	assert.Equal(t, []string{"4"}, ids(got))
}

func TestSortModes(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"3", "1", "4", "2"}, ids(Sort(products, SortMostSold)))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Sort(products, SortNewest)))
	assert.Equal(t, []string{"3", "1", "4", "2"}, ids(Sort(products, SortOldest)))
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(Sort(products, SortPriceHighLow)))
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(Sort(products, SortPriceLowHigh)))

	// The input order is never mutated.
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(products))
}

func TestSortMissingValuesSortAsZero(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: models.N(100)},
		{ID: "b"}, // no price on the wire
		{ID: "c", Price: models.N(50)},
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids(Sort(products, SortPriceLowHigh)))
}

func TestSortUnknownModeKeepsOrder(t *testing.T) {
	products := sampleProducts()
	assert.Equal(t, ids(products), ids(Sort(products, SortMode("Alphabetical"))))
}

func TestPaginatorTotalPages(t *testing.T) {
	assert.Equal(t, 0, NewPaginator(0, 10).TotalPages())
	assert.Equal(t, 1, NewPaginator(10, 10).TotalPages())
	assert.Equal(t, 2, NewPaginator(11, 10).TotalPages())
	assert.Equal(t, 3, NewPaginator(25, 10).TotalPages())
}

func TestPaginatorOutOfRangeIsNoOp(t *testing.T) {
	p := NewPaginator(25, 10)
	assert.Equal(t, 1, p.Page())

	p.SetPage(0)
	assert.Equal(t, 1, p.Page())
	p.SetPage(4)
	assert.Equal(t, 1, p.Page())

	p.SetPage(3)
	assert.Equal(t, 3, p.Page())
	p.Next()
	assert.Equal(t, 3, p.Page())
	p.Prev()
	assert.Equal(t, 2, p.Page())
}

func TestPaginatorBoundsAndSlice(t *testing.T) {
	products := make([]models.Product, 25)
	for i := range products {
		products[i].ID = string(rune('a' + i))
	}

	p := NewPaginator(len(products), 10)
	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	p.SetPage(3)
	start, end = p.Bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.Len(t, p.Slice(products), 5)
}

func TestPaginatorDefaultsPageSize(t *testing.T) {
	p := NewPaginator(30, 0)
	assert.Equal(t, 3, p.TotalPages())
}
