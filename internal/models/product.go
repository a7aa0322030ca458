package models

import "time"

// StockEntry is the per-variant inventory figure. Quantity bounds for cart
// mutations are always looked up against the exact (size, color) pair.
type StockEntry struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type Review struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
	Author      string    `json:"author"`
	Date        time.Time `json:"date"`
}

type Product struct {
	ID          string       `json:"_id"`
	Name        string       `json:"productName"`
	Code        string       `json:"productNumber"`
	Description string       `json:"productDescription"`
	Category    string       `json:"productCategory"`
	For         string       `json:"productFor"`
	Price       Number       `json:"productPrice"`
	Images      []string     `json:"productImage"`
	Sizes       []string     `json:"sizes"`
	Colors      []string     `json:"colors"`
	Stock       []StockEntry `json:"stock"`
	TotalStock  int          `json:"productStock"`
	InStock     bool         `json:"inStock"`
	SoldCount   Number       `json:"soldCount"`
	Ratings     float64      `json:"ratings"`
	Reviews     []Review     `json:"reviews"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// StockFor returns the stock quantity for the exact size/color pair, 0 when
// no matching entry exists.
func (p *Product) StockFor(size, color string) int {
	for _, entry := range p.Stock {
		if entry.Size == size && entry.Color == color {
			return entry.Quantity
		}
	}
	return 0
}

// RequiresSize reports whether a size must be chosen before the product can
// be added to the cart.
func (p *Product) RequiresSize() bool {
	return len(p.Sizes) > 0
}

func (p *Product) RequiresColor() bool {
	return len(p.Colors) > 0
}
