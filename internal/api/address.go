package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func (a *API) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	var res struct {
		envelope
		Addresses []models.Address `json:"addresses"`
	}
	if err := a.http.Get(ctx, "/api/address/"+userID, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to load addresses")
	}
	return res.Addresses, nil
}

func (a *API) CreateAddress(ctx context.Context, address models.Address) (*models.Address, error) {
	var res struct {
		envelope
		Address *models.Address `json:"address"`
	}
	if err := a.http.Post(ctx, "/api/address", address, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Address == nil {
		return nil, res.err("failed to save address")
	}
	return res.Address, nil
}
