package api

import (
	"context"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResult struct {
	envelope
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (a *API) Register(ctx context.Context, creds Credentials) (string, *models.User, error) {
	var res authResult
	if err := a.http.Post(ctx, "/api/user/register", creds, &res); err != nil {
		return "", nil, err
	}
	if !res.Success {
		return "", nil, res.err("registration failed")
	}
	return res.Token, res.User, nil
}

func (a *API) Login(ctx context.Context, creds Credentials) (string, *models.User, error) {
	var res authResult
	if err := a.http.Post(ctx, "/api/user/login", creds, &res); err != nil {
		return "", nil, err
	}
	if !res.Success {
		return "", nil, res.err("login failed")
	}
	return res.Token, res.User, nil
}

// Me confirms the stored user token and returns the signed-in user.
func (a *API) Me(ctx context.Context) (*models.User, error) {
	var res struct {
		envelope
		User *models.User `json:"user"`
	}
	if err := a.http.Get(ctx, "/api/user/me", &res); err != nil {
		return nil, err
	}
	if !res.Success || res.User == nil {
		return nil, res.err("failed to fetch user")
	}
	return res.User, nil
}

// AdminLogin returns a bearer-style admin token with an embedded expiry claim.
func (a *API) AdminLogin(ctx context.Context, creds Credentials) (string, error) {
	var res struct {
		envelope
		Token string `json:"token"`
	}
	if err := a.http.Post(ctx, "/api/admin/login", creds, &res); err != nil {
		return "", err
	}
	if !res.Success {
		return "", res.err("admin login failed")
	}
	return res.Token, nil
}

// AdminPing confirms the stored admin token against the backend.
func (a *API) AdminPing(ctx context.Context) error {
	var res envelope
	if err := a.http.Get(ctx, "/api/admin", &res); err != nil {
		return err
	}
	if !res.Success {
		return res.err("admin check failed")
	}
	return nil
}
