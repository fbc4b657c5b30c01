package models

import "time"

// Known order statuses. The status column itself is an open string; these are
// the documented lifecycle states.
const (
	StatusDraft      = "draft"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// KnownStatus reports whether s is one of the documented lifecycle states.
func KnownStatus(s string) bool {
	switch s {
	case StatusDraft, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// DeliveryLeadTime is the fixed window between order creation and the
// estimated delivery date.
const DeliveryLeadTime = 7 * 24 * time.Hour

// Order is the sole persisted entity, one row per order in the orders table.
type Order struct {
	OrderID           string    `json:"order_id" db:"order_id"`
	CustomerID        string    `json:"customer_id" db:"customer_id"`
	ProductName       string    `json:"product_name" db:"product_name"`
	Size              string    `json:"size" db:"size"`
	Price             float64   `json:"price" db:"price"`
	Status            string    `json:"status" db:"status"`
	OrderDate         time.Time `json:"order_date" db:"order_date"`
	EstimatedDelivery time.Time `json:"estimated_delivery" db:"estimated_delivery"`
	ShippingAddress   string    `json:"shipping_address" db:"shipping_address"`
	PaymentMethod     string    `json:"payment_method" db:"payment_method"`
	Confirmed         bool      `json:"confirmed" db:"confirmed"`
}

// OrderStatus is the read-only projection returned by status queries. The
// delivery date is pre-formatted for display ("January 2, 2006" layout).
type OrderStatus struct {
	OrderID           string  `json:"order_id"`
	Status            string  `json:"status"`
	OrderDate         string  `json:"order_date"`
	EstimatedDelivery string  `json:"estimated_delivery"`
	ProductName       string  `json:"product_name"`
	Size              string  `json:"size"`
	Price             float64 `json:"price"`
}
