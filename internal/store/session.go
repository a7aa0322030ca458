package store

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

// Rehydrate restores the session from durable tokens on startup. The admin
// token's expiry claim is checked offline first; only a token that still
// looks live earns the confirmation round-trip. The user token is confirmed
// with a whoami call, and a confirmed identity triggers the cart, wishlist
// and recently-viewed fetches.
func (s *Store) Rehydrate(ctx context.Context) {
	s.rehydrateAdmin(ctx)
	s.rehydrateUser(ctx)
}

func (s *Store) rehydrateAdmin(ctx context.Context) {
	token, ok := s.kv.Get(storage.KeyAdminToken)
	if !ok || token == "" {
		s.setAdmin(false)
		return
	}

	expiry, err := tokenExpiry(token)
	if err != nil || time.Now().After(expiry) {
		s.kv.Remove(storage.KeyAdminToken)
		s.setAdmin(false)
		return
	}

	// Claims look live; the backend has the final word.
	if err := s.api.AdminPing(ctx); err != nil {
		s.log.WithError(err).Debug("admin token confirmation failed")
		s.setAdmin(false)
		return
	}
	s.setAdmin(true)
}

func (s *Store) rehydrateUser(ctx context.Context) {
	token, ok := s.kv.Get(storage.KeyToken)
	if !ok || token == "" {
		s.resetUserState()
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.WithError(err).Debug("session rehydration failed")
		s.resetUserState()
		return
	}
	s.setUser(user)
	s.refreshUserData(ctx)
}

// Login persists the token, confirms it with a whoami call, and loads the
// user's cart, wishlist and view history. A failed confirmation evicts the
// token again.
func (s *Store) Login(ctx context.Context, token string) (*models.User, error) {
	if err := s.kv.Set(storage.KeyToken, token); err != nil {
		return nil, err
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		s.kv.Remove(storage.KeyToken)
		s.resetUserState()
		return nil, fmt.Errorf("login: %w", err)
	}
	s.setUser(user)
	s.refreshUserData(ctx)
	return user, nil
}

// LoginWithPassword exchanges credentials for a token and signs in.
func (s *Store) LoginWithPassword(ctx context.Context, email, password string) (*models.User, error) {
	token, _, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.Login(ctx, token)
}

// AdminLogin stores the admin token and sets the admin flag once confirmed.
func (s *Store) AdminLogin(ctx context.Context, email, password string) error {
	token, err := s.api.AdminLogin(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyAdminToken, token); err != nil {
		return err
	}
	if err := s.api.AdminPing(ctx); err != nil {
		s.setAdmin(false)
		return err
	}
	s.setAdmin(true)
	return nil
}

// Logout is a pure local operation: tokens and state are dropped without any
// network call.
func (s *Store) Logout() {
	s.kv.Remove(storage.KeyToken)
	s.kv.Remove(storage.KeyAdminToken)
	s.recent.Reset()

	s.mu.Lock()
	s.user = nil
	s.isAdmin = false
	s.cart = nil
	s.wishlist = nil
	s.mu.Unlock()
}

func (s *Store) refreshUserData(ctx context.Context) {
	// Background reconciliation: failures here degrade silently, the
	// individual fetches already log.
	s.FetchCart(ctx)
	s.FetchWishlist(ctx)
	s.FetchRecentlyViewed(ctx)
}

func (s *Store) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Store) setAdmin(v bool) {
	s.mu.Lock()
	s.isAdmin = v
	s.mu.Unlock()
}

func (s *Store) resetUserState() {
	s.mu.Lock()
	s.user = nil
	s.cart = nil
	s.wishlist = nil
	s.mu.Unlock()
	s.recent.Reset()
}

// tokenExpiry decodes the token's exp claim without verifying the signature.
// The client holds no signing secret; this is only the cheap liveness check
// before the authoritative confirmation call.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return exp.Time, nil
}
