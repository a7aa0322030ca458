package api

import (
	"context"
	"net/url"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

type cartResult struct {
	envelope
	Cart models.Cart `json:"cart"`
}

type CartMutation struct {
	UserID    string  `json:"userId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity,omitempty"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// nullable maps empty strings to JSON null, matching the wire convention for
// products without size/color variants.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *API) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var res cartResult
	if err := a.http.Get(ctx, "/api/cart?userId="+url.QueryEscape(userID), &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch cart")
	}
	return res.Cart.Items, nil
}

// AddToCart returns the full updated line list.
func (a *API) AddToCart(ctx context.Context, userID, productID string, quantity int, size, color string) ([]models.CartItem, error) {
	body := CartMutation{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      nullable(size),
		Color:     nullable(color),
	}
	var res cartResult
	if err := a.http.Post(ctx, "/api/cart/add", body, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to add to cart")
	}
	return res.Cart.Items, nil
}

func (a *API) UpdateCart(ctx context.Context, userID, productID string, quantity int, size, color string) ([]models.CartItem, error) {
	body := CartMutation{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      nullable(size),
		Color:     nullable(color),
	}
	var res cartResult
	if err := a.http.Put(ctx, "/api/cart/update", body, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to update cart")
	}
	return res.Cart.Items, nil
}

func (a *API) RemoveFromCart(ctx context.Context, userID, productID, size, color string) ([]models.CartItem, error) {
	body := CartMutation{
		UserID:    userID,
		ProductID: productID,
		Size:      nullable(size),
		Color:     nullable(color),
	}
	var res cartResult
	if err := a.http.Delete(ctx, "/api/cart/remove", body, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to remove from cart")
	}
	return res.Cart.Items, nil
}

func (a *API) ClearCart(ctx context.Context) error {
	var res envelope
	if err := a.http.Delete(ctx, "/api/cart/clear", nil, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to clear cart")
	}
	return nil
}
