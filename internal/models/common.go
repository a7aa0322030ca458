package models

import (
	"encoding/json"
	"regexp"
)

// Number is a JSON numeric field that tracks whether the backend actually
// sent a number. The API has a history of returning strings or omitting
// price/quantity fields; callers that sum money must skip invalid values
// instead of treating them as zero.
type Number struct {
	Float float64
	Valid bool
}

func N(v float64) Number {
	return Number{Float: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		// Not a JSON number: record invalid, keep decoding the payload.
		n.Float = 0
		n.Valid = false
		return nil
	}
	n.Float = f
	n.Valid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float)
}

// Int returns the value truncated to an int, 0 when invalid.
func (n Number) Int() int {
	if !n.Valid {
		return 0
	}
	return int(n.Float)
}

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID reports whether id looks like a backend document id
// (24 hex characters). Every mutation validates ids before touching the
// network.
func IsValidObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// Enums
type PaymentType string

const (
	PaymentBankTransfer PaymentType = "Bank Transfer"
	PaymentOnline       PaymentType = "Online Payment"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Category string

const (
	CategoryMen      Category = "Men"
	CategoryWomen    Category = "Women"
	CategoryChildren Category = "Children"
)
