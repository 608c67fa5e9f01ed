package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	DeliveryModeExpress   = "express"
	DeliveryModeScheduled = "scheduled"
)

type Order struct {
	ID              int         `json:"id"`
	OrderNumber     string      `json:"order_number"`
	UserID          int         `json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	Address         string      `json:"address"`
	Postcode        string      `json:"postcode"`
	Phone           string      `json:"phone"`
	DeliveryMode    string      `json:"delivery_mode"`
	TimeSlotID      *int        `json:"time_slot_id,omitempty"`
	ScheduledDate   *time.Time  `json:"scheduled_date,omitempty"`
	PromoCode       *string     `json:"promo_code,omitempty"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	DeliveryFee     float64     `json:"delivery_fee"`
	ConvenienceFee  float64     `json:"convenience_fee"`
	ServiceFee      float64     `json:"service_fee"`
	Total           float64     `json:"total"`
	PaymentIntentID *string     `json:"payment_intent_id,omitempty"`
	Status          string      `json:"status"`
	Notes           *string     `json:"notes,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderMessage is a customer or admin support note attached to an order.
// Appending messages is the only customer-side mutation after creation.
type OrderMessage struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
