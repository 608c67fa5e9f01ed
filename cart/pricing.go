package cart

import "math"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// FeeRates are the configurable percentage fees applied at checkout.
// The convenience fee is charged on subtotal plus delivery fee; the service
// fee on subtotal plus delivery fee plus convenience fee.
type FeeRates struct {
	ConveniencePct float64
	ServicePct     float64
}

// Quote is the full pricing breakdown for a cart. All amounts are rounded
// to two decimal places.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	DeliveryFee    float64 `json:"delivery_fee"`
	ConvenienceFee float64 `json:"convenience_fee"`
	ServiceFee     float64 `json:"service_fee"`
	Total          float64 `json:"total"`
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DiscountAmount computes the discount a promo contributes against a
// subtotal. Percentage discounts take value as a percent of the subtotal;
// fixed discounts take value as-is. The result is capped at the subtotal
// and never negative.
func DiscountAmount(subtotal float64, discountType string, value float64) float64 {
	if subtotal <= 0 || value <= 0 {
		return 0
	}

	var discount float64
	switch discountType {
	case DiscountPercentage:
		discount = subtotal * value / 100
	case DiscountFixed:
		discount = value
	default:
		return 0
	}

	if discount > subtotal {
		discount = subtotal
	}
	return Round2(discount)
}

// Price derives the full breakdown from a subtotal, an already-computed
// discount, a delivery fee, and the fee percentages.
func Price(subtotal, discount, deliveryFee float64, rates FeeRates) Quote {
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	convenienceFee := Round2((subtotal + deliveryFee) * rates.ConveniencePct / 100)
	serviceFee := Round2((subtotal + deliveryFee + convenienceFee) * rates.ServicePct / 100)

	return Quote{
		Subtotal:       Round2(subtotal),
		Discount:       Round2(discount),
		DeliveryFee:    Round2(deliveryFee),
		ConvenienceFee: convenienceFee,
		ServiceFee:     serviceFee,
		Total:          Round2(subtotal - discount + deliveryFee + convenienceFee + serviceFee),
	}
}
