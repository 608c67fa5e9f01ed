package models

import "time"

const (
	PickupStatusPending    = "pending"
	PickupStatusShopping   = "shopping"
	PickupStatusDelivering = "delivering"
	PickupStatusCompleted  = "completed"
	PickupStatusCancelled  = "cancelled"
)

// PickupOrder is a multi-store grocery run fulfilled by a shopper on the
// customer's behalf. Each stop carries a free-text shopping list against a
// registered store.
type PickupOrder struct {
	ID              int          `json:"id"`
	OrderNumber     string       `json:"order_number"`
	UserID          int          `json:"user_id"`
	CustomerName    string       `json:"customer_name"`
	Address         string       `json:"address"`
	Postcode        string       `json:"postcode"`
	Phone           string       `json:"phone"`
	EstimatedBudget float64      `json:"estimated_budget"`
	ServiceFee      float64      `json:"service_fee"`
	PaymentIntentID *string      `json:"payment_intent_id,omitempty"`
	Status          string       `json:"status"`
	Stops           []PickupStop `json:"stops,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type PickupStop struct {
	ID            int    `json:"id"`
	PickupOrderID int    `json:"pickup_order_id"`
	StoreID       int    `json:"store_id"`
	StoreName     string `json:"store_name,omitempty"`
	ItemList      string `json:"item_list"`
	Position      int    `json:"position"`
}

func ValidPickupStatus(status string) bool {
	switch status {
	case PickupStatusPending, PickupStatusShopping, PickupStatusDelivering,
		PickupStatusCompleted, PickupStatusCancelled:
		return true
	}
	return false
}
