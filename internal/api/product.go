package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func (a *API) ListProducts(ctx context.Context) ([]models.Product, error) {
	var res struct {
		envelope
		Products []models.Product `json:"products"`
	}
	if err := a.http.Get(ctx, "/api/product", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch products")
	}
	return res.Products, nil
}

func (a *API) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var res struct {
		envelope
		Product *models.Product `json:"product"`
	}
	if err := a.http.Get(ctx, "/api/product/"+id, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Product == nil {
		return nil, res.err("product not found")
	}
	return res.Product, nil
}

type ReviewInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Author      string `json:"author"`
}

func (a *API) AddReview(ctx context.Context, productID string, review ReviewInput) error {
	var res envelope
	if err := a.http.Post(ctx, "/api/product/"+productID+"/review", review, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to add review")
	}
	return nil
}

// Admin operations. These routes carry the admin token header.

func (a *API) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var res struct {
		envelope
		Product *models.Product `json:"product"`
	}
	if err := a.http.Post(ctx, "/api/product/add", product, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to add product")
	}
	return res.Product, nil
}

func (a *API) UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var res struct {
		envelope
		Product *models.Product `json:"product"`
	}
	if err := a.http.Put(ctx, "/api/product/"+product.ID, product, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to update product")
	}
	return res.Product, nil
}

type StockUpdate struct {
	ProductID string              `json:"productId"`
	Stock     []models.StockEntry `json:"stock"`
}

func (a *API) SetStock(ctx context.Context, update StockUpdate) error {
	var res envelope
	if err := a.http.Post(ctx, "/api/product/stock", update, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to update stock")
	}
	return nil
}
