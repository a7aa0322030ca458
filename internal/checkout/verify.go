package checkout

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
	"github.com/Rotimanchase/byc-storefront/internal/store"
)

var (
	// ErrMissingParams means the redirect came back without the session or
	// order identifiers; no verification call is made.
	ErrMissingParams = errors.New("payment verification failed: missing parameters")

	// ErrVerificationFailed tells the user to contact support. Payment is
	// never assumed to have succeeded.
	ErrVerificationFailed = errors.New("payment verification failed; please contact support if payment was deducted")
)

// Verifier performs the one post-redirect verification call. The one-shot
// guard makes repeat invocations return the first outcome without firing a
// second request, no matter how often the success surface re-renders.
type Verifier struct {
	mu   sync.Mutex
	done bool

	api   *api.API
	store *store.Store
	kv    storage.Store
	log   *logrus.Logger

	order *models.Order
	err   error
}

func NewVerifier(a *api.API, st *store.Store, kv storage.Store, log *logrus.Logger) *Verifier {
	return &Verifier{api: a, store: st, kv: kv, log: log}
}

// Verify checks the payment identified by (sessionID, orderID). The order id
// falls back to the pending-order key persisted before the redirect. On
// success the cart is cleared; on failure it is left untouched.
func (v *Verifier) Verify(ctx context.Context, sessionID, orderID string) (*models.Order, error) {
	v.mu.Lock()
	if v.done {
		order, err := v.order, v.err
		v.mu.Unlock()
		return order, err
	}
	v.done = true
	v.mu.Unlock()

	order, err := v.verify(ctx, sessionID, orderID)

	v.mu.Lock()
	v.order, v.err = order, err
	v.mu.Unlock()
	return order, err
}

func (v *Verifier) verify(ctx context.Context, sessionID, orderID string) (*models.Order, error) {
	if orderID == "" {
		orderID, _ = v.kv.Get(storage.KeyPendingOrderID)
	}
	if sessionID == "" || orderID == "" {
		return nil, ErrMissingParams
	}

	order, err := v.api.VerifyPayment(ctx, sessionID, orderID)
	if err != nil {
		v.log.WithError(err).Error("payment verification failed")
		return nil, errors.Join(ErrVerificationFailed, err)
	}

	// Payment confirmed: now the cart can go.
	if err := v.api.ClearCart(ctx); err != nil {
		v.log.WithError(err).Warn("cart clear after payment failed (non-critical)")
	}
	v.store.ClearCartLocal()
	v.store.FetchCart(ctx)

	v.kv.Remove(storage.KeyPendingOrderID)
	v.kv.Remove(storage.KeyOrderTotal)
	return order, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
