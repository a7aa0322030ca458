// Package engagement tracks recently-viewed products and per-device blog
// view/like deduplication on top of the key-value storage port.
package engagement

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

// MaxRecentlyViewed caps the history list.
const MaxRecentlyViewed = 5

// RecentlyViewed keeps a capped, deduplicated, most-recent-first product
// history. The local list is authoritative for ordering; the server copy is
// a best-effort mirror for signed-in users.
type RecentlyViewed struct {
	mu       sync.Mutex
	api      *api.API
	kv       storage.Store
	log      *logrus.Logger
	products []models.Product
}

func NewRecentlyViewed(a *api.API, kv storage.Store, log *logrus.Logger) *RecentlyViewed {
	return &RecentlyViewed{api: a, kv: kv, log: log}
}

// Products returns a copy of the in-memory history.
func (r *RecentlyViewed) Products() []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// Add validates the id, confirms the product exists, then moves it to the
// front of the local list. The server mirror only happens for signed-in
// sessions and its failure is logged, never surfaced.
func (r *RecentlyViewed) Add(ctx context.Context, productID string, loggedIn bool) error {
	if !models.IsValidObjectID(productID) {
		return &InvalidIDError{ID: productID}
	}

	product, err := r.api.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("validate product %s: %w", productID, err)
	}

	r.mu.Lock()
	ids := storage.GetStringSlice(r.kv, storage.KeyRecentlyViewed)
	ids = prepend(ids, productID)
	if err := storage.SetStringSlice(r.kv, storage.KeyRecentlyViewed, ids); err != nil {
		r.mu.Unlock()
		return err
	}

	kept := r.products[:0:0]
	for _, p := range r.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	r.products = append([]models.Product{*product}, kept...)
	if len(r.products) > MaxRecentlyViewed {
		r.products = r.products[:MaxRecentlyViewed]
	}
	r.mu.Unlock()

	if loggedIn {
		if err := r.api.AddRecentlyViewed(ctx, productID); err != nil {
			r.log.WithError(err).Warn("failed to mirror recently viewed to server")
		}
	}
	return nil
}

// Fetch rebuilds the history: local ids seed the order, then (for signed-in
// users) server-side entries are unioned in behind them. Invalid or
// unfetchable ids are skipped.
func (r *RecentlyViewed) Fetch(ctx context.Context, loggedIn bool) ([]models.Product, error) {
	ids := storage.GetStringSlice(r.kv, storage.KeyRecentlyViewed)

	var products []models.Product
	seen := make(map[string]bool)
	for _, id := range ids {
		if !models.IsValidObjectID(id) {
			r.log.WithField("product_id", id).Warn("invalid product id in recently viewed")
			continue
		}
		product, err := r.api.GetProduct(ctx, id)
		if err != nil {
			r.log.WithError(err).WithField("product_id", id).Warn("failed to fetch recently viewed product")
			continue
		}
		if !seen[product.ID] {
			seen[product.ID] = true
			products = append(products, *product)
		}
	}

	if loggedIn {
		serverProducts, err := r.api.GetRecentlyViewed(ctx)
		if err != nil {
			r.log.WithError(err).Warn("failed to fetch server recently viewed")
		} else {
			for _, p := range serverProducts {
				if !seen[p.ID] {
					seen[p.ID] = true
					products = append(products, p)
					ids = append(ids, p.ID)
				}
			}
			if len(ids) > MaxRecentlyViewed {
				ids = ids[:MaxRecentlyViewed]
			}
			if err := storage.SetStringSlice(r.kv, storage.KeyRecentlyViewed, ids); err != nil {
				r.log.WithError(err).Warn("failed to persist merged recently viewed ids")
			}
		}
	}

	if len(products) > MaxRecentlyViewed {
		products = products[:MaxRecentlyViewed]
	}

	r.mu.Lock()
	r.products = products
	r.mu.Unlock()
	return r.Products(), nil
}

// Clear empties the local history and, for signed-in users, the server copy.
func (r *RecentlyViewed) Clear(ctx context.Context, loggedIn bool) error {
	if err := storage.SetStringSlice(r.kv, storage.KeyRecentlyViewed, nil); err != nil {
		return err
	}
	r.mu.Lock()
	r.products = nil
	r.mu.Unlock()

	if loggedIn {
		if err := r.api.ClearRecentlyViewed(ctx); err != nil {
			r.log.WithError(err).Warn("failed to clear server recently viewed")
		}
	}
	return nil
}

// Reset drops local state only, for logout.
func (r *RecentlyViewed) Reset() {
	r.mu.Lock()
	r.products = nil
	r.mu.Unlock()
	r.kv.Remove(storage.KeyRecentlyViewed)
}

// prepend moves id to the front of ids, deduplicating and capping the list.
func prepend(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if len(out) > MaxRecentlyViewed {
		out = out[:MaxRecentlyViewed]
	}
	return out
}

// InvalidIDError marks a malformed product or blog identifier, caught before
// any network call.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid product ID: %q", e.ID)
}

// DeviceID returns the stable per-device identity, minting one on first use.
func DeviceID(kv storage.Store) string {
	if id, ok := kv.Get(storage.KeyDeviceID); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	kv.Set(storage.KeyDeviceID, id)
	return id
}
