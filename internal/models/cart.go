package models

// CartItem is one cart line. The backend populates the product document into
// the productId field, so the full product (including its stock table) rides
// along with every line. Uniqueness key is (product id, size, color).
type CartItem struct {
	Product  Product `json:"productId"`
	Quantity Number  `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

// Matches reports whether the line is keyed by the given triple. Empty size
// and color compare equal to the backend's nulls.
func (c *CartItem) Matches(productID, size, color string) bool {
	return c.Product.ID == productID && c.Size == size && c.Color == color
}

type Cart struct {
	Items []CartItem `json:"items"`
}
