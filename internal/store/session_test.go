package store

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

type SessionTestSuite struct {
	StoreTestSuite
}

func (s *SessionTestSuite) TestRehydrateWithValidUserToken() {
	p := s.seedVariantProduct(5)
	s.signIn()
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "M", "Red"))

	// A brand new process with the same storage recovers the full session.
	s.restart()
	s.store.Rehydrate(s.ctx)

	s.Require().NotNil(s.store.User())
	s.Equal("test@example.com", s.store.User().Email)
	s.Len(s.store.Cart(), 1)
}

func (s *SessionTestSuite) TestRehydrateWithRejectedTokenResetsState() {
	s.kv.Set(storage.KeyToken, "stale-or-forged")

	s.store.Rehydrate(s.ctx)

	s.Nil(s.store.User())
	_, ok := s.kv.Get(storage.KeyToken)
	s.False(ok, "rejected token must be evicted")
}

func (s *SessionTestSuite) TestRehydrateEvictsExpiredAdminTokenOffline() {
	s.kv.Set(storage.KeyAdminToken, s.stub.ExpiredAdminToken())

	s.store.Rehydrate(s.ctx)

	s.False(s.store.IsAdmin())
	_, ok := s.kv.Get(storage.KeyAdminToken)
	s.False(ok)
	// The expiry claim is checked locally; no confirmation round-trip happens.
	s.Zero(s.stub.Hits("GET", "/api/admin"))
}

func (s *SessionTestSuite) TestRehydrateEvictsUnparsableAdminToken() {
	s.kv.Set(storage.KeyAdminToken, "not-a-jwt")

	s.store.Rehydrate(s.ctx)

	s.False(s.store.IsAdmin())
	_, ok := s.kv.Get(storage.KeyAdminToken)
	s.False(ok)
	s.Zero(s.stub.TotalRequests())
}

func (s *SessionTestSuite) TestRehydrateConfirmsLiveAdminToken() {
	s.kv.Set(storage.KeyAdminToken, s.stub.AdminToken)

	s.store.Rehydrate(s.ctx)

	s.True(s.store.IsAdmin())
	s.Equal(1, s.stub.Hits("GET", "/api/admin"))
}

func (s *SessionTestSuite) TestAdminLoginStoresTokenAndFlag() {
	err := s.store.AdminLogin(s.ctx, "admin@byc.example", "secret")
	s.Require().NoError(err)

	s.True(s.store.IsAdmin())
	token, ok := s.kv.Get(storage.KeyAdminToken)
	s.True(ok)
	s.Equal(s.stub.AdminToken, token)
}

func (s *SessionTestSuite) TestLoginWithPassword() {
	user, err := s.store.LoginWithPassword(s.ctx, "test@example.com", "pass1234")
	s.Require().NoError(err)
	s.Equal("test@example.com", user.Email)

	token, ok := s.kv.Get(storage.KeyToken)
	s.True(ok)
	s.Equal(s.stub.UserToken, token)
}

func (s *SessionTestSuite) TestLoginFailureEvictsToken() {
	_, err := s.store.Login(s.ctx, "forged-token")
	s.Error(err)

	_, ok := s.kv.Get(storage.KeyToken)
	s.False(ok)
	s.Nil(s.store.User())
}

func (s *SessionTestSuite) TestLogoutIsPureLocal() {
	s.signIn()
	p := s.seedVariantProduct(5)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "M", "Red"))
	s.Require().NoError(s.store.AddRecentlyViewed(s.ctx, p.ID))
	before := s.stub.TotalRequests()

	s.store.Logout()

	s.Equal(before, s.stub.TotalRequests(), "logout must not touch the network")
	s.Nil(s.store.User())
	s.False(s.store.IsAdmin())
	s.Empty(s.store.Cart())
	s.Empty(s.store.Wishlist())
	s.Empty(s.store.RecentlyViewed())

	_, ok := s.kv.Get(storage.KeyToken)
	s.False(ok)
	_, ok = s.kv.Get(storage.KeyAdminToken)
	s.False(ok)

	// The server still has the cart; it belongs to the account, not the device.
	s.Len(s.stub.CartLines(), 1)
}

func (s *SessionTestSuite) TestSessionAuthenticated() {
	s.False(models.Session{}.Authenticated())
	s.True(models.Session{User: &models.User{ID: "u1"}}.Authenticated())
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
