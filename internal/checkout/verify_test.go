package checkout

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

type VerifyTestSuite struct {
	CheckoutTestSuite
	verifier *Verifier
}

func (s *VerifyTestSuite) SetupTest() {
	s.CheckoutTestSuite.SetupTest()
	s.verifier = NewVerifier(s.api, s.store, s.kv, s.log)
}

// redirectedOrder walks the online-payment flow up to the redirect and
// returns the pending order id.
func (s *VerifyTestSuite) redirectedOrder() string {
	s.fillCart(5600, 1)
	s.readyToSubmit(models.PaymentOnline)
	_, err := s.checkout.Submit(s.ctx)
	s.Require().NoError(err)

	orderID, ok := s.kv.Get(storage.KeyPendingOrderID)
	s.Require().True(ok)
	return orderID
}

func (s *VerifyTestSuite) TestVerifyClearsCartAndPendingState() {
	orderID := s.redirectedOrder()

	order, err := s.verifier.Verify(s.ctx, "cs_test_123", "")
	s.Require().NoError(err)

	// The order id came from the pending key persisted before the redirect.
	s.Equal(orderID, order.ID)
	s.Equal(models.PaymentStatusPaid, order.PaymentStatus)

	s.Empty(s.store.Cart())
	s.Empty(s.stub.CartLines())
	_, ok := s.kv.Get(storage.KeyPendingOrderID)
	s.False(ok)
	_, ok = s.kv.Get(storage.KeyOrderTotal)
	s.False(ok)
}

func (s *VerifyTestSuite) TestVerifyIsOneShot() {
	s.redirectedOrder()

	first, err := s.verifier.Verify(s.ctx, "cs_test_123", "")
	s.Require().NoError(err)

	// Re-rendering the success surface must not fire a second verification.
	second, err := s.verifier.Verify(s.ctx, "cs_test_123", "")
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, s.stub.Hits("POST", "/api/order/verify-payment"))
}

func (s *VerifyTestSuite) TestVerifyMissingParameters() {
	before := s.stub.TotalRequests()

	_, err := s.verifier.Verify(s.ctx, "", "")
	s.ErrorIs(err, ErrMissingParams)
	s.Equal(before, s.stub.TotalRequests())
}

func (s *VerifyTestSuite) TestVerifyFailureLeavesCartAlone() {
	s.redirectedOrder()
	s.stub.FailVerify = true

	_, err := s.verifier.Verify(s.ctx, "cs_test_123", "")
	s.ErrorIs(err, ErrVerificationFailed)

	// Payment is unconfirmed, so nothing is cleared.
	s.Len(s.store.Cart(), 1)
	s.Len(s.stub.CartLines(), 1)
	_, ok := s.kv.Get(storage.KeyPendingOrderID)
	s.True(ok)

	// The failure outcome is cached like the success one.
	_, err = s.verifier.Verify(s.ctx, "cs_test_123", "")
	s.ErrorIs(err, ErrVerificationFailed)
	s.Equal(1, s.stub.Hits("POST", "/api/order/verify-payment"))
}

func TestVerifySuite(t *testing.T) {
	suite.Run(t, new(VerifyTestSuite))
}
