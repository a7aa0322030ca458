package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

// GetRecentlyViewed returns the server-side view history for the signed-in
// user, as full product documents.
func (a *API) GetRecentlyViewed(ctx context.Context) ([]models.Product, error) {
	var res struct {
		envelope
		RecentlyViewed []models.Product `json:"recentlyViewed"`
	}
	if err := a.http.Get(ctx, "/api/user/recently-viewed", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch recently viewed")
	}
	return res.RecentlyViewed, nil
}

func (a *API) AddRecentlyViewed(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	var res envelope
	if err := a.http.Post(ctx, "/api/user/recently-viewed", body, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to update recently viewed")
	}
	return nil
}

func (a *API) ClearRecentlyViewed(ctx context.Context) error {
	var res envelope
	if err := a.http.Delete(ctx, "/api/user/recently-viewed", nil, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to clear recently viewed")
	}
	return nil
}
