package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func (s *Server) handleListBlogs(c *gin.Context) {
	s.mu.Lock()
	blogs := make([]models.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		blogs = append(blogs, *b)
	}
	s.mu.Unlock()
	ok(c, gin.H{"blogs": blogs})
}

func (s *Server) handleGetBlog(c *gin.Context) {
	s.mu.Lock()
	blog, found := s.blogs[c.Param("id")]
	var copied models.Blog
	if found {
		copied = *blog
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "blog not found")
		return
	}
	ok(c, gin.H{"blog": copied})
}

func (s *Server) handleBlogViews(c *gin.Context) {
	s.mu.Lock()
	blog, found := s.blogs[c.Param("id")]
	var copied models.Blog
	if found {
		blog.Views++
		copied = *blog
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "blog not found")
		return
	}
	ok(c, gin.H{"blog": copied})
}

func (s *Server) handleBlogLikes(c *gin.Context) {
	s.mu.Lock()
	blog, found := s.blogs[c.Param("id")]
	var copied models.Blog
	if found {
		blog.Likes++
		copied = *blog
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "blog not found")
		return
	}
	ok(c, gin.H{"blog": copied})
}

func (s *Server) handleCreateBlog(c *gin.Context) {
	var blog models.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		fail(c, http.StatusBadRequest, "invalid blog")
		return
	}
	s.mu.Lock()
	if blog.ID == "" {
		blog.ID = s.NewID()
	}
	copied := blog
	s.blogs[blog.ID] = &copied
	s.mu.Unlock()
	ok(c, gin.H{"blog": blog})
}

func (s *Server) handleListAddresses(c *gin.Context) {
	s.mu.Lock()
	addresses := make([]models.Address, len(s.addresses[c.Param("userId")]))
	copy(addresses, s.addresses[c.Param("userId")])
	s.mu.Unlock()
	ok(c, gin.H{"addresses": addresses})
}

func (s *Server) handleCreateAddress(c *gin.Context) {
	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		fail(c, http.StatusBadRequest, "invalid address")
		return
	}
	s.mu.Lock()
	address.ID = s.NewID()
	s.addresses[address.UserID] = append(s.addresses[address.UserID], address)
	s.mu.Unlock()
	ok(c, gin.H{"address": address})
}

func (s *Server) handleGetRecentlyViewed(c *gin.Context) {
	s.mu.Lock()
	products := make([]models.Product, 0)
	for _, id := range s.recentlyViewed[s.User.ID] {
		if p, found := s.products[id]; found {
			products = append(products, p)
		}
	}
	s.mu.Unlock()
	ok(c, gin.H{"recentlyViewed": products})
}

func (s *Server) handleAddRecentlyViewed(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.recentlyViewed[s.User.ID]
	kept := make([]string, 0, len(ids)+1)
	kept = append(kept, req.ProductID)
	for _, id := range ids {
		if id != req.ProductID {
			kept = append(kept, id)
		}
	}
	s.recentlyViewed[s.User.ID] = kept
	ok(c, nil)
}

func (s *Server) handleClearRecentlyViewed(c *gin.Context) {
	s.mu.Lock()
	s.recentlyViewed[s.User.ID] = nil
	s.mu.Unlock()
	ok(c, nil)
}
