// Package store is the single source of truth for client-side application
// state: cart, wishlist, session, admin flag, recently-viewed history and
// the live search query. It is an explicit dependency-injected service, not
// a package-level singleton, so tests can substitute a fake backend.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/engagement"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

type Store struct {
	mu sync.Mutex

	api    *api.API
	kv     storage.Store
	log    *logrus.Logger
	recent *engagement.RecentlyViewed

	user        *models.User
	isAdmin     bool
	cart        []models.CartItem
	wishlist    []models.Product
	searchQuery string
}

func New(a *api.API, kv storage.Store, log *logrus.Logger) *Store {
	return &Store{
		api:    a,
		kv:     kv,
		log:    log,
		recent: engagement.NewRecentlyViewed(a, kv, log),
	}
}

// Snapshot accessors. All return copies; mutating them never touches store
// state.

func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAdmin
}

func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Store) Wishlist() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

func (s *Store) RecentlyViewed() []models.Product {
	return s.recent.Products()
}

func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = strings.TrimSpace(q)
}

func (s *Store) loggedInUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID == "" {
		return models.User{}, false
	}
	return *s.user, true
}

// FetchCart refreshes the cart from the server. Anonymous sessions
// short-circuit to an empty cart without a network call.
func (s *Store) FetchCart(ctx context.Context) ([]models.CartItem, error) {
	user, ok := s.loggedInUser()
	if !ok {
		s.setCart(nil)
		return nil, nil
	}
	items, err := s.api.GetCart(ctx, user.ID)
	if err != nil {
		s.log.WithError(err).Error("fetch cart failed")
		s.setCart(nil)
		return nil, err
	}
	s.setCart(items)
	return items, nil
}

// FetchWishlist refreshes the wishlist; anonymous sessions short-circuit.
func (s *Store) FetchWishlist(ctx context.Context) ([]models.Product, error) {
	if _, ok := s.loggedInUser(); !ok {
		s.setWishlist(nil)
		return nil, nil
	}
	items, err := s.api.GetWishlist(ctx)
	if err != nil {
		s.log.WithError(err).Error("fetch wishlist failed")
		s.setWishlist(nil)
		return nil, err
	}
	s.setWishlist(items)
	return items, nil
}

// AddToCart validates locally first: a session must exist, the id must be
// well-formed, and size/color must be chosen whenever the product offers
// them. The option check runs against a freshly fetched product, not stale
// local state. Only then does the mutation go out.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int, size, color string) error {
	user, ok := s.loggedInUser()
	if !ok {
		return ErrNotLoggedIn
	}
	if !models.IsValidObjectID(productID) {
		return validationErrorf("cannot add to cart: invalid product ID")
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.api.GetProduct(ctx, productID)
	if err == nil {
		if product.RequiresSize() && size == "" {
			return validationErrorf("please select a size: %s", strings.Join(product.Sizes, ", "))
		}
		if product.RequiresColor() && color == "" {
			return validationErrorf("please select a color: %s", strings.Join(product.Colors, ", "))
		}
	}

	items, err := s.api.AddToCart(ctx, user.ID, productID, quantity, size, color)
	if err != nil {
		return err
	}
	s.setCart(items)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A target below 1 is
// a removal concern, never quantity=0.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, size, color string) error {
	user, ok := s.loggedInUser()
	if !ok {
		return ErrNotLoggedIn
	}
	if !models.IsValidObjectID(productID) {
		return validationErrorf("cannot update cart: invalid product ID")
	}
	if quantity < 1 {
		return validationErrorf("quantity must be at least 1; remove the item instead")
	}

	items, err := s.api.UpdateCart(ctx, user.ID, productID, quantity, size, color)
	if err != nil {
		return err
	}
	s.setCart(items)
	return nil
}

// IncrementQuantity bumps a cart line by one, bounded by the stock figure
// for the exact (size, color) pair. The bound is enforced client-side; a
// rejected increment makes no network call.
func (s *Store) IncrementQuantity(ctx context.Context, productID, size, color string) error {
	line, ok := s.findLine(productID, size, color)
	if !ok {
		return validationErrorf("item not in cart")
	}

	stock := line.Product.StockFor(size, color)
	if stock == 0 {
		return validationErrorf("no stock available for %s/%s", orNA(size), orNA(color))
	}
	current := line.Quantity.Int()
	if current >= stock {
		return validationErrorf("only %d items in stock for %s/%s", stock, orNA(size), orNA(color))
	}

	return s.UpdateQuantity(ctx, productID, current+1, size, color)
}

// DecrementQuantity lowers a line by one. Quantity 1 is the floor: the call
// is a no-op, never an update to zero.
func (s *Store) DecrementQuantity(ctx context.Context, productID, size, color string) error {
	line, ok := s.findLine(productID, size, color)
	if !ok {
		return validationErrorf("item not in cart")
	}
	current := line.Quantity.Int()
	if current <= 1 {
		return nil
	}
	return s.UpdateQuantity(ctx, productID, current-1, size, color)
}

func (s *Store) RemoveFromCart(ctx context.Context, productID, size, color string) error {
	user, ok := s.loggedInUser()
	if !ok {
		return ErrNotLoggedIn
	}
	if !models.IsValidObjectID(productID) {
		return validationErrorf("cannot remove from cart: invalid product ID")
	}

	items, err := s.api.RemoveFromCart(ctx, user.ID, productID, size, color)
	if err != nil {
		return err
	}
	s.setCart(items)
	return nil
}

// ClearCartLocal drops the in-memory cart only; the server-side clear is the
// checkout flow's responsibility.
func (s *Store) ClearCartLocal() {
	s.setCart(nil)
}

func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	if _, ok := s.loggedInUser(); !ok {
		return ErrNotLoggedIn
	}
	if !models.IsValidObjectID(productID) {
		return validationErrorf("cannot add to wishlist: invalid product ID")
	}
	if err := s.api.AddToWishlist(ctx, productID); err != nil {
		return err
	}
	_, err := s.FetchWishlist(ctx)
	return err
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	if _, ok := s.loggedInUser(); !ok {
		return ErrNotLoggedIn
	}
	if !models.IsValidObjectID(productID) {
		return validationErrorf("cannot remove from wishlist: invalid product ID")
	}
	if err := s.api.RemoveFromWishlist(ctx, productID); err != nil {
		return err
	}
	_, err := s.FetchWishlist(ctx)
	return err
}

// AddRecentlyViewed records a product view; server mirroring only happens
// for signed-in sessions and degrades silently.
func (s *Store) AddRecentlyViewed(ctx context.Context, productID string) error {
	_, loggedIn := s.loggedInUser()
	return s.recent.Add(ctx, productID, loggedIn)
}

func (s *Store) FetchRecentlyViewed(ctx context.Context) ([]models.Product, error) {
	_, loggedIn := s.loggedInUser()
	return s.recent.Fetch(ctx, loggedIn)
}

func (s *Store) ClearRecentlyViewed(ctx context.Context) error {
	_, loggedIn := s.loggedInUser()
	return s.recent.Clear(ctx, loggedIn)
}

func (s *Store) findLine(productID, size, color string) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.cart {
		if item.Matches(productID, size, color) {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func (s *Store) setCart(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = items
}

func (s *Store) setWishlist(items []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = items
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
