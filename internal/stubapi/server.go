// Package stubapi is an in-memory fake of the BYC backend used by tests. It
// serves the same routes and response envelope as the deployed API and
// counts hits per route so tests can assert that an operation made no
// network call.
package stubapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

const adminSigningKey = "stub-admin-secret"

// CartLine is the raw stored shape of a cart entry, exposed so tests can
// assert on server-side cart state directly.
type CartLine struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type Server struct {
	mu sync.Mutex

	Router *gin.Engine

	UserToken  string
	AdminToken string
	User       models.User

	// FailVerify forces verify-payment to report failure.
	FailVerify bool

	products       map[string]models.Product
	blogs          map[string]*models.Blog
	carts          map[string][]CartLine
	wishlists      map[string][]string
	addresses      map[string][]models.Address
	orders         map[string]*models.Order
	recentlyViewed map[string][]string

	hits   map[string]int
	total  int
	nextID int
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		UserToken:      "stub-user-token",
		products:       make(map[string]models.Product),
		blogs:          make(map[string]*models.Blog),
		carts:          make(map[string][]CartLine),
		wishlists:      make(map[string][]string),
		addresses:      make(map[string][]models.Address),
		orders:         make(map[string]*models.Order),
		recentlyViewed: make(map[string][]string),
		hits:           make(map[string]int),
	}
	s.User = models.User{ID: s.NewID(), Name: "Test User", Email: "test@example.com"}
	s.AdminToken = s.mintAdminToken(time.Hour)

	r := gin.New()
	r.Use(cors.Default())
	r.Use(s.countHits())
	s.routes(r)
	s.Router = r
	return s
}

// NewID returns a fresh 24-hex document id.
func (s *Server) NewID() string {
	s.nextID++
	return fmt.Sprintf("%024x", s.nextID)
}

// mintAdminToken issues an HS256 token with an embedded expiry claim, the
// shape the store's offline check parses.
func (s *Server) mintAdminToken(ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(adminSigningKey))
	return signed
}

// ExpiredAdminToken issues a token whose expiry claim is already in the past.
func (s *Server) ExpiredAdminToken() string {
	return s.mintAdminToken(-time.Hour)
}

func (s *Server) countHits() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.hits[c.Request.Method+" "+c.FullPath()]++
		s.total++
		s.mu.Unlock()
		c.Next()
	}
}

// Hits reports how often a route pattern was called, e.g.
// ("POST", "/api/cart/add").
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// TotalRequests counts every request the stub has seen.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// SeedProduct registers a product, assigning an id when absent.
func (s *Server) SeedProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.NewID()
	}
	s.products[p.ID] = p
	return p
}

// SeedBlog registers a blog post.
func (s *Server) SeedBlog(b models.Blog) models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = s.NewID()
	}
	copy := b
	s.blogs[b.ID] = &copy
	return b
}

// Blog returns the current counters for a blog.
func (s *Server) Blog(id string) models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blogs[id]; ok {
		return *b
	}
	return models.Blog{}
}

// Order returns a stored order by id.
func (s *Server) Order(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return *o, true
	}
	return models.Order{}, false
}

// CartLines returns the raw cart contents for the seeded user.
func (s *Server) CartLines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartLine, len(s.carts[s.User.ID]))
	copy(out, s.carts[s.User.ID])
	return out
}

// Response helpers sharing the backend's envelope.

func ok(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
