package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

type cartMutation struct {
	UserID    string  `json:"userId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cartItems renders the stored lines with the product document populated,
// the way the backend returns carts.
func (s *Server) cartItems(userID string) []gin.H {
	items := make([]gin.H, 0, len(s.carts[userID]))
	for _, line := range s.carts[userID] {
		product := s.products[line.ProductID]
		items = append(items, gin.H{
			"productId": product,
			"quantity":  line.Quantity,
			"size":      line.Size,
			"color":     line.Color,
		})
	}
	return items
}

func (s *Server) handleGetCart(c *gin.Context) {
	userID := c.Query("userId")
	s.mu.Lock()
	items := s.cartItems(userID)
	s.mu.Unlock()
	ok(c, gin.H{"cart": gin.H{"items": items}})
}

func (s *Server) handleCartAdd(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid cart mutation")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, found := s.products[req.ProductID]
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	size, color := deref(req.Size), deref(req.Color)
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	lines := s.carts[req.UserID]
	merged := false
	for i := range lines {
		if lines[i].ProductID == req.ProductID && lines[i].Size == size && lines[i].Color == color {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, CartLine{ProductID: req.ProductID, Quantity: quantity, Size: size, Color: color})
	}

	if stock := stockFor(product, size, color); stock > 0 {
		for i := range lines {
			if lines[i].ProductID == req.ProductID && lines[i].Size == size && lines[i].Color == color && lines[i].Quantity > stock {
				fail(c, http.StatusBadRequest, "insufficient stock")
				return
			}
		}
	}

	s.carts[req.UserID] = lines
	ok(c, gin.H{"cart": gin.H{"items": s.cartItems(req.UserID)}})
}

func (s *Server) handleCartUpdate(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid cart mutation")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size, color := deref(req.Size), deref(req.Color)
	lines := s.carts[req.UserID]
	for i := range lines {
		if lines[i].ProductID == req.ProductID && lines[i].Size == size && lines[i].Color == color {
			lines[i].Quantity = req.Quantity
			s.carts[req.UserID] = lines
			ok(c, gin.H{"cart": gin.H{"items": s.cartItems(req.UserID)}})
			return
		}
	}
	fail(c, http.StatusNotFound, "item not in cart")
}

func (s *Server) handleCartRemove(c *gin.Context) {
	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid cart mutation")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size, color := deref(req.Size), deref(req.Color)
	lines := s.carts[req.UserID]
	kept := lines[:0]
	for _, line := range lines {
		if !(line.ProductID == req.ProductID && line.Size == size && line.Color == color) {
			kept = append(kept, line)
		}
	}
	s.carts[req.UserID] = kept
	ok(c, gin.H{"cart": gin.H{"items": s.cartItems(req.UserID)}})
}

func (s *Server) handleCartClear(c *gin.Context) {
	s.mu.Lock()
	s.carts[s.User.ID] = nil
	s.mu.Unlock()
	ok(c, gin.H{"cart": gin.H{"items": []gin.H{}}})
}

func (s *Server) handleGetWishlist(c *gin.Context) {
	s.mu.Lock()
	items := make([]models.Product, 0)
	for _, id := range s.wishlists[s.User.ID] {
		if p, found := s.products[id]; found {
			items = append(items, p)
		}
	}
	s.mu.Unlock()
	ok(c, gin.H{"items": items})
}

func (s *Server) handleWishlistAdd(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlists[s.User.ID] {
		if id == req.ProductID {
			ok(c, nil)
			return
		}
	}
	s.wishlists[s.User.ID] = append(s.wishlists[s.User.ID], req.ProductID)
	ok(c, nil)
}

func (s *Server) handleWishlistRemove(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.wishlists[s.User.ID][:0]
	for _, id := range s.wishlists[s.User.ID] {
		if id != req.ProductID {
			kept = append(kept, id)
		}
	}
	s.wishlists[s.User.ID] = kept
	ok(c, nil)
}

func stockFor(p models.Product, size, color string) int {
	for _, entry := range p.Stock {
		if entry.Size == size && entry.Color == color {
			return entry.Quantity
		}
	}
	return 0
}
