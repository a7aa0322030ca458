package models

import "time"

type Address struct {
	ID       string `json:"_id,omitempty"`
	UserID   string `json:"userId,omitempty"`
	Fullname string `json:"fullname" validate:"required"`
	Company  string `json:"company,omitempty"`
	Country  string `json:"country" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
type OrderItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

type Order struct {
	ID            string        `json:"_id,omitempty"`
	UserID        string        `json:"userId"`
	Items         []OrderItem   `json:"items"`
	Address       Address       `json:"address"`
	PaymentType   PaymentType   `json:"paymentType"`
	Subtotal      float64       `json:"subtotal"`
	DeliveryFee   float64       `json:"deliveryFee"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
}
