package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

// CreateOrder places a bank-transfer order synchronously.
func (a *API) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var res struct {
		envelope
		Order *models.Order `json:"order"`
	}
	if err := a.http.Post(ctx, "/api/order/create", order, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("order placement failed")
	}
	return res.Order, nil
}

type StripeSession struct {
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}

// CreateStripeSession posts the order payload to the online-payment endpoint
// and returns the redirect URL. The cart must not be cleared at this point;
// payment has not been confirmed yet.
func (a *API) CreateStripeSession(ctx context.Context, order models.Order) (*StripeSession, error) {
	var res struct {
		envelope
		StripeSession
	}
	if err := a.http.Post(ctx, "/api/order/stripe", order, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.URL == "" {
		return nil, res.err("order placement failed")
	}
	return &StripeSession{URL: res.URL, OrderID: res.OrderID}, nil
}

func (a *API) VerifyPayment(ctx context.Context, sessionID, orderID string) (*models.Order, error) {
	body := map[string]string{"session_id": sessionID, "order_id": orderID}
	var res struct {
		envelope
		Order *models.Order `json:"order"`
	}
	if err := a.http.Post(ctx, "/api/order/verify-payment", body, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("payment verification failed")
	}
	return res.Order, nil
}

func (a *API) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var res struct {
		envelope
		Orders []models.Order `json:"orders"`
	}
	if err := a.http.Get(ctx, "/api/order/user", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch orders")
	}
	return res.Orders, nil
}

// Admin order operations.

func (a *API) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var res struct {
		envelope
		Orders []models.Order `json:"orders"`
	}
	if err := a.http.Get(ctx, "/api/order/admin", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.err("failed to fetch orders")
	}
	return res.Orders, nil
}

func (a *API) MarkOrderPaid(ctx context.Context, orderID string) error {
	var res envelope
	if err := a.http.Patch(ctx, "/api/order/"+orderID+"/mark-paid", nil, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to mark order paid")
	}
	return nil
}

func (a *API) CancelOrder(ctx context.Context, orderID string) error {
	var res envelope
	if err := a.http.Patch(ctx, "/api/order/"+orderID+"/cancel", nil, &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("failed to cancel order")
	}
	return nil
}
