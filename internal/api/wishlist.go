package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

type wishlistResult struct {
	envelope
	Items []models.Product `json:"items"`
}

func (a *API) GetWishlist(ctx context.Context) ([]models.Product, error) {
	var res wishlistResult
	if err := a.http.Get(ctx, "/api/wishlist", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch wishlist")
	}
	return res.Items, nil
}

func (a *API) AddToWishlist(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	var res envelope
	if err := a.http.Post(ctx, "/api/wishlist/add", body, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to add to wishlist")
	}
	return nil
}

func (a *API) RemoveFromWishlist(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	var res envelope
	if err := a.http.Post(ctx, "/api/wishlist/remove", body, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to remove from wishlist")
	}
	return nil
}
