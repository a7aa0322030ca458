package store

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Rotimanchase/byc-storefront/internal/api"
	"github.com/Rotimanchase/byc-storefront/internal/config"
	"github.com/Rotimanchase/byc-storefront/internal/httpclient"
	"github.com/Rotimanchase/byc-storefront/internal/models"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
	"github.com/Rotimanchase/byc-storefront/internal/stubapi"
)

type StoreTestSuite struct {
	suite.Suite
	stub  *stubapi.Server
	srv   *httptest.Server
	kv    *storage.MemoryStore
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.stub = stubapi.New()
	s.srv = httptest.NewServer(s.stub.Router)
	s.kv = storage.NewMemory()
	s.ctx = context.Background()
	s.restart()
}

// restart swaps in a fresh Store sharing the same backend and storage,
// simulating a new process picking up durable state.
func (s *StoreTestSuite) restart() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Environment: "production",
		API:         config.APIConfig{BaseURL: s.srv.URL, Timeout: 5 * time.Second},
	}
	backend := api.New(httpclient.New(cfg, s.kv, log))
	s.store = New(backend, s.kv, log)
}

func (s *StoreTestSuite) TearDownTest() {
	s.srv.Close()
}

func (s *StoreTestSuite) signIn() {
	_, err := s.store.Login(s.ctx, s.stub.UserToken)
	s.Require().NoError(err)
}

func (s *StoreTestSuite) seedVariantProduct(stock int) models.Product {
	return s.stub.SeedProduct(models.Product{
		Name:   "MEN BOXERS",
		Price:  models.N(2500),
		Sizes:  []string{"S", "M"},
		Colors: []string{"Red", "Blue"},
		Stock:  []models.StockEntry{{Size: "M", Color: "Red", Quantity: stock}},
	})
}

func (s *StoreTestSuite) TestAnonymousCartMutationMakesNoNetworkCall() {
	err := s.store.AddToCart(s.ctx, s.stub.NewID(), 1, "", "")
	s.ErrorIs(err, ErrNotLoggedIn)
	s.EqualError(err, "please log in")
	s.Zero(s.stub.TotalRequests())
}

func (s *StoreTestSuite) TestAddToCartRejectsMalformedIDLocally() {
	s.signIn()
	before := s.stub.TotalRequests()

	err := s.store.AddToCart(s.ctx, "shop/boxers/42", 1, "", "")

	var verr *ValidationError
	s.ErrorAs(err, &verr)
	s.Contains(err.Error(), "invalid product ID")
	s.Equal(before, s.stub.TotalRequests())
}

func (s *StoreTestSuite) TestAddToCartDemandsSizeAndColorWhenOffered() {
	s.signIn()
	p := s.seedVariantProduct(5)

	err := s.store.AddToCart(s.ctx, p.ID, 1, "", "")
	s.EqualError(err, "please select a size: S, M")

	err = s.store.AddToCart(s.ctx, p.ID, 1, "M", "")
	s.EqualError(err, "please select a color: Red, Blue")

	// Neither rejected attempt may reach the cart endpoint.
	s.Zero(s.stub.Hits("POST", "/api/cart/add"))
}

func (s *StoreTestSuite) TestAddToCartUpdatesLocalState() {
	s.signIn()
	p := s.seedVariantProduct(5)

	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 2, "M", "Red"))

	cart := s.store.Cart()
	s.Require().Len(cart, 1)
	s.Equal(p.ID, cart[0].Product.ID)
	s.Equal(2, cart[0].Quantity.Int())
	s.Equal("M", cart[0].Size)
}

func (s *StoreTestSuite) TestIncrementBoundedByVariantStock() {
	s.signIn()
	p := s.seedVariantProduct(2)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 2, "M", "Red"))
	before := s.stub.Hits("PUT", "/api/cart/update")

	err := s.store.IncrementQuantity(s.ctx, p.ID, "M", "Red")

	s.EqualError(err, "only 2 items in stock for M/Red")
	s.Equal(before, s.stub.Hits("PUT", "/api/cart/update"))
	s.Equal(2, s.store.Cart()[0].Quantity.Int())
}

func (s *StoreTestSuite) TestIncrementWithinStock() {
	s.signIn()
	p := s.seedVariantProduct(3)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "M", "Red"))

	s.Require().NoError(s.store.IncrementQuantity(s.ctx, p.ID, "M", "Red"))
	s.Equal(2, s.store.Cart()[0].Quantity.Int())
}

func (s *StoreTestSuite) TestIncrementWithNoStockEntry() {
	s.signIn()
	p := s.stub.SeedProduct(models.Product{Name: "SINGLET", Price: models.N(1200)})
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "", ""))

	err := s.store.IncrementQuantity(s.ctx, p.ID, "", "")
	s.EqualError(err, "no stock available for N/A/N/A")
}

func (s *StoreTestSuite) TestDecrementStopsAtOne() {
	s.signIn()
	p := s.seedVariantProduct(5)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 2, "M", "Red"))

	s.Require().NoError(s.store.DecrementQuantity(s.ctx, p.ID, "M", "Red"))
	s.Equal(1, s.store.Cart()[0].Quantity.Int())

	before := s.stub.Hits("PUT", "/api/cart/update")
	s.Require().NoError(s.store.DecrementQuantity(s.ctx, p.ID, "M", "Red"))
	s.Equal(1, s.store.Cart()[0].Quantity.Int(), "quantity 1 is the floor")
	s.Equal(before, s.stub.Hits("PUT", "/api/cart/update"))
}

func (s *StoreTestSuite) TestUpdateQuantityRejectsZero() {
	s.signIn()
	p := s.seedVariantProduct(5)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "M", "Red"))

	err := s.store.UpdateQuantity(s.ctx, p.ID, 0, "M", "Red")
	s.Contains(err.Error(), "remove the item instead")
}

func (s *StoreTestSuite) TestRemoveFromCart() {
	s.signIn()
	p := s.seedVariantProduct(5)
	s.Require().NoError(s.store.AddToCart(s.ctx, p.ID, 1, "M", "Red"))

	s.Require().NoError(s.store.RemoveFromCart(s.ctx, p.ID, "M", "Red"))
	s.Empty(s.store.Cart())
	s.Empty(s.stub.CartLines())
}

func (s *StoreTestSuite) TestFetchCartAnonymousShortCircuits() {
	items, err := s.store.FetchCart(s.ctx)
	s.NoError(err)
	s.Empty(items)
	s.Zero(s.stub.TotalRequests())
}

func (s *StoreTestSuite) TestServerRejectionSurfacesMessageVerbatim() {
	s.signIn()
	p := s.seedVariantProduct(1)

	err := s.store.AddToCart(s.ctx, p.ID, 2, "M", "Red")
	s.EqualError(err, "insufficient stock")
	s.Empty(s.store.Cart())
}

func (s *StoreTestSuite) TestWishlistRoundTrip() {
	s.signIn()
	p := s.seedVariantProduct(5)

	s.Require().NoError(s.store.AddToWishlist(s.ctx, p.ID))
	wishlist := s.store.Wishlist()
	s.Require().Len(wishlist, 1)
	s.Equal(p.ID, wishlist[0].ID)

	s.Require().NoError(s.store.RemoveFromWishlist(s.ctx, p.ID))
	s.Empty(s.store.Wishlist())
}

func (s *StoreTestSuite) TestSearchQueryIsTrimmed() {
	s.store.SetSearchQuery("  camisole \n")
	s.Equal("camisole", s.store.SearchQuery())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	st := &Store{
		user: &models.User{ID: "u1", Name: "A"},
		cart: []models.CartItem{{Quantity: models.N(1)}},
	}

	u := st.User()
	u.Name = "mutated"
	assert.Equal(t, "A", st.User().Name)

	cart := st.Cart()
	cart[0].Quantity = models.N(99)
	assert.Equal(t, 1, st.Cart()[0].Quantity.Int())
}
