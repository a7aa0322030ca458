// Package catalog filters, sorts and pages an already-fetched product list.
// Everything here is pure and in-memory; the backend is never consulted.
package catalog

import (
	"sort"
	"strings"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

// Filter narrows a product list. Zero values mean "no constraint".
type Filter struct {
	// Category must match the fixed {Men, Women, Children} vocabulary
	// exactly (case-insensitive compare, exact value).
	Category string
	// ProductType is a case-insensitive substring match against the
	// product name (e.g. "BOXERS").
	ProductType string
	// Gender maps Male→Men and Female→Women before matching the category.
	Gender string
	// Search is a case-insensitive substring match against the product name.
	Search string
	// InStockOnly drops products flagged out of stock or with no total stock.
	InStockOnly bool
}

func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(&p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p *models.Product) bool {
	if f.InStockOnly && (!p.InStock || p.TotalStock <= 0) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Gender != "" {
		category := f.Gender
		switch strings.ToLower(f.Gender) {
		case "male":
			category = string(models.CategoryMen)
		case "female":
			category = string(models.CategoryWomen)
		}
		if !strings.EqualFold(p.Category, category) {
			return false
		}
	}
	if f.ProductType != "" &&
		!strings.Contains(strings.ToUpper(p.Name), strings.ToUpper(f.ProductType)) {
		return false
	}
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// SortMode is one of the five fixed catalog orderings.
type SortMode string

const (
	SortMostSold     SortMode = "Most Sold"
	SortNewest       SortMode = "Newest"
	SortOldest       SortMode = "Oldest"
	SortPriceHighLow SortMode = "Price: High to Low"
	SortPriceLowHigh SortMode = "Price: Low to High"
)

// Sort returns a sorted copy. Missing sold counts and prices sort as 0,
// missing timestamps as the zero time; ties keep their incoming order.
func Sort(products []models.Product, mode SortMode) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch mode {
	case SortMostSold:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SoldCount.Float > out[j].SoldCount.Float
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Float > out[j].Price.Float
		})
	case SortPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Float < out[j].Price.Float
		})
	}
	return out
}

// DefaultPageSize matches the product grid.
const DefaultPageSize = 10

// Paginator windows a list with 1-indexed pages. Out-of-range page requests
// are ignored rather than erroring, mirroring disabled pager buttons.
type Paginator struct {
	total    int
	pageSize int
	page     int
}

func NewPaginator(total, pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{total: total, pageSize: pageSize, page: 1}
}

func (p *Paginator) Page() int { return p.page }

func (p *Paginator) TotalPages() int {
	return (p.total + p.pageSize - 1) / p.pageSize
}

// SetPage moves to page n when 1 ≤ n ≤ TotalPages; otherwise it is a no-op.
func (p *Paginator) SetPage(n int) {
	if n >= 1 && n <= p.TotalPages() {
		p.page = n
	}
}

func (p *Paginator) Next() { p.SetPage(p.page + 1) }
func (p *Paginator) Prev() { p.SetPage(p.page - 1) }

// Bounds returns the [start, end) window of the current page.
func (p *Paginator) Bounds() (int, int) {
	start := (p.page - 1) * p.pageSize
	if start > p.total {
		start = p.total
	}
	end := start + p.pageSize
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Slice applies the current window to the product list.
func (p *Paginator) Slice(products []models.Product) []models.Product {
	start, end := p.Bounds()
	if start >= len(products) {
		return nil
	}
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
