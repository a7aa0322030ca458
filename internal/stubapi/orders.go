package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rotimanchase/byc-storefront/internal/models"
)

func (s *Server) handleCreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		fail(c, http.StatusBadRequest, "invalid order")
		return
	}
	s.mu.Lock()
	order.ID = s.NewID()
	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusPending
	s.orders[order.ID] = &order
	s.mu.Unlock()
	ok(c, gin.H{"order": order})
}

func (s *Server) handleStripeOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		fail(c, http.StatusBadRequest, "invalid order")
		return
	}
	s.mu.Lock()
	order.ID = s.NewID()
	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusPending
	s.orders[order.ID] = &order
	s.mu.Unlock()
	ok(c, gin.H{
		"url":     "https://checkout.stripe.example/session/" + order.ID,
		"orderId": order.ID,
	})
}

func (s *Server) handleVerifyPayment(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		OrderID   string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.OrderID == "" {
		fail(c, http.StatusBadRequest, "missing verification parameters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailVerify {
		fail(c, http.StatusBadRequest, "payment not completed")
		return
	}
	order, found := s.orders[req.OrderID]
	if !found {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusPaid
	ok(c, gin.H{"order": order})
}

func (s *Server) handleUserOrders(c *gin.Context) {
	s.mu.Lock()
	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.UserID == s.User.ID {
			orders = append(orders, *o)
		}
	}
	s.mu.Unlock()
	ok(c, gin.H{"orders": orders})
}

func (s *Server) handleAdminOrders(c *gin.Context) {
	s.mu.Lock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	s.mu.Unlock()
	ok(c, gin.H{"orders": orders})
}

func (s *Server) handleMarkPaid(c *gin.Context) {
	s.mu.Lock()
	order, found := s.orders[c.Param("id")]
	if found {
		order.PaymentStatus = models.PaymentStatusPaid
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	ok(c, nil)
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	s.mu.Lock()
	order, found := s.orders[c.Param("id")]
	if found {
		order.Status = models.OrderStatusCancelled
	}
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "order not found")
		return
	}
	ok(c, nil)
}
