package stubapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func (s *Server) routes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	{
		user := apiGroup.Group("/user")
		{
			user.POST("/register", s.handleLogin)
			user.POST("/login", s.handleLogin)
			user.GET("/me", s.requireUser, s.handleMe)
			user.GET("/recently-viewed", s.requireUser, s.handleGetRecentlyViewed)
			user.POST("/recently-viewed", s.requireUser, s.handleAddRecentlyViewed)
			user.DELETE("/recently-viewed", s.requireUser, s.handleClearRecentlyViewed)
		}

		admin := apiGroup.Group("/admin")
		{
			admin.POST("/login", s.handleAdminLogin)
			admin.GET("", s.requireAdmin, func(c *gin.Context) { ok(c, nil) })
		}

		cart := apiGroup.Group("/cart", s.requireUser)
		{
			cart.GET("", s.handleGetCart)
			cart.POST("/add", s.handleCartAdd)
			cart.PUT("/update", s.handleCartUpdate)
			cart.DELETE("/remove", s.handleCartRemove)
			cart.DELETE("/clear", s.handleCartClear)
		}

		wishlist := apiGroup.Group("/wishlist", s.requireUser)
		{
			wishlist.GET("", s.handleGetWishlist)
			wishlist.POST("/add", s.handleWishlistAdd)
			wishlist.POST("/remove", s.handleWishlistRemove)
		}

		product := apiGroup.Group("/product")
		{
			product.GET("", s.handleListProducts)
			product.POST("/add", s.requireAdmin, s.handleAddProduct)
			product.POST("/stock", s.requireAdmin, s.handleSetStock)
			product.GET("/:id", s.handleGetProduct)
			product.PUT("/:id", s.handleUpdateProduct)
			product.POST("/:id/review", s.requireUser, s.handleAddReview)
		}

		order := apiGroup.Group("/order")
		{
			order.POST("/create", s.requireUser, s.handleCreateOrder)
			order.POST("/stripe", s.requireUser, s.handleStripeOrder)
			order.POST("/verify-payment", s.handleVerifyPayment)
			order.GET("/user", s.requireUser, s.handleUserOrders)
			order.GET("/admin", s.handleAdminOrders)
			order.PATCH("/:id/mark-paid", s.handleMarkPaid)
			order.PATCH("/:id/cancel", s.handleCancelOrder)
		}

		blog := apiGroup.Group("/blog")
		{
			blog.GET("", s.handleListBlogs)
			blog.POST("/create", s.handleCreateBlog)
			blog.GET("/:id", s.handleGetBlog)
			blog.PATCH("/:id/views", s.handleBlogViews)
			blog.PATCH("/:id/likes", s.handleBlogLikes)
		}

		apiGroup.GET("/address/:userId", s.requireUser, s.handleListAddresses)
		apiGroup.POST("/address", s.requireUser, s.handleCreateAddress)
	}
}

func (s *Server) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != s.UserToken {
		fail(c, http.StatusUnauthorized, "unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) requireAdmin(c *gin.Context) {
	if c.GetHeader("x-auth-token") != s.AdminToken {
		fail(c, http.StatusUnauthorized, "admin access denied")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "invalid credentials")
		return
	}
	s.mu.Lock()
	user := s.User
	s.mu.Unlock()
	ok(c, gin.H{"token": s.UserToken, "user": user})
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	ok(c, gin.H{"token": s.AdminToken})
}

func (s *Server) handleMe(c *gin.Context) {
	s.mu.Lock()
	user := s.User
	s.mu.Unlock()
	ok(c, gin.H{"user": user})
}

func (s *Server) handleListProducts(c *gin.Context) {
	s.mu.Lock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	s.mu.Unlock()
	ok(c, gin.H{"products": products})
}

func (s *Server) handleGetProduct(c *gin.Context) {
	s.mu.Lock()
	product, found := s.products[c.Param("id")]
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	ok(c, gin.H{"product": product})
}

func (s *Server) handleAddProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, "invalid product")
		return
	}
	s.mu.Lock()
	if p.ID == "" {
		p.ID = s.NewID()
	}
	s.products[p.ID] = p
	s.mu.Unlock()
	ok(c, gin.H{"product": p})
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, "invalid product")
		return
	}
	p.ID = c.Param("id")
	s.mu.Lock()
	_, found := s.products[p.ID]
	if found {
		s.products[p.ID] = p
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	ok(c, gin.H{"product": p})
}

func (s *Server) handleSetStock(c *gin.Context) {
	var req struct {
		ProductID string              `json:"productId"`
		Stock     []models.StockEntry `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid stock update")
		return
	}
	s.mu.Lock()
	product, found := s.products[req.ProductID]
	if found {
		product.Stock = req.Stock
		s.products[req.ProductID] = product
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	ok(c, nil)
}

func (s *Server) handleAddReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		fail(c, http.StatusBadRequest, "invalid review")
		return
	}
	s.mu.Lock()
	product, found := s.products[c.Param("id")]
	if found {
		product.Reviews = append(product.Reviews, review)
		s.products[product.ID] = product
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	ok(c, nil)
}
