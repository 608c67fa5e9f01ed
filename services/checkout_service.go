package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"grocery-shop/cart"
	"grocery-shop/libs"
	"grocery-shop/models"
	"grocery-shop/utils"
)

var (
	ErrMissingFields    = errors.New("name, address, postcode, and phone are required")
	ErrTermsNotAccepted = errors.New("terms must be accepted")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPaymentDeclined  = errors.New("payment was not confirmed")
)

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, orderReference string) (*libs.PaymentIntent, error)
	VerifyPayment(ctx context.Context, paymentIntentID string) (bool, error)
}

// CatalogRepo reprices a cart snapshot against the live product rows so
// totals and the order snapshot use authoritative prices and names.
type CatalogRepo interface {
	RefreshCart(ctx context.Context, c *cart.Cart) error
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error
}

type Mailer interface {
	SendOrderConfirmationEmail(toEmail, orderNumber string, total float64) error
}

// CheckoutService sequences address/delivery/promo validation, payment
// intent creation, and the order write. Any remote failure is returned to
// the caller as-is; there is no retry, the customer resubmits.
type CheckoutService struct {
	carts    cart.Store
	catalog  CatalogRepo
	promos   *PromoService
	delivery *DeliveryService
	payments PaymentGateway
	orders   OrderWriter
	mailer   Mailer
	rates    cart.FeeRates
}

func NewCheckoutService(
	carts cart.Store,
	catalog CatalogRepo,
	promos *PromoService,
	delivery *DeliveryService,
	payments PaymentGateway,
	orders OrderWriter,
	mailer Mailer,
	rates cart.FeeRates,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		catalog:  catalog,
		promos:   promos,
		delivery: delivery,
		payments: payments,
		orders:   orders,
		mailer:   mailer,
		rates:    rates,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID int, email string, req models.CheckoutRequest) (*models.Order, error) {
	if req.FullName == "" || req.Address == "" || req.Postcode == "" || req.Phone == "" {
		return nil, ErrMissingFields
	}
	if !req.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	owner := strconv.Itoa(userID)
	c, err := s.carts.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := s.delivery.CheckPostcode(ctx, req.Postcode); err != nil {
		return nil, err
	}

	if err := s.catalog.RefreshCart(ctx, c); err != nil {
		return nil, err
	}
	subtotal := c.Subtotal()

	var discount float64
	var promoCode *string
	if req.PromoCode != "" {
		promo, amount, err := s.promos.Validate(ctx, req.PromoCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = amount
		promoCode = &promo.Code
	}

	selection, err := s.delivery.Resolve(ctx, req.DeliveryMode, req.TimeSlotID, req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	quote := cart.Price(subtotal, discount, selection.Fee, s.rates)

	orderNumber := utils.NewOrderNumber("ORD")

	intent, err := s.payments.CreateIntent(ctx, quote.Total, orderNumber)
	if err != nil {
		return nil, err
	}

	// CreateIntent charges synchronously (see libs.PaymentsClient), so the
	// intent is verifiable right away.
	paid, err := s.payments.VerifyPayment(ctx, intent.ID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, ErrPaymentDeclined
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		CustomerName:    req.FullName,
		Address:         req.Address,
		Postcode:        req.Postcode,
		Phone:           req.Phone,
		DeliveryMode:    selection.Mode,
		TimeSlotID:      selection.TimeSlotID,
		ScheduledDate:   selection.ScheduledDate,
		PromoCode:       promoCode,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		DeliveryFee:     quote.DeliveryFee,
		ConvenienceFee:  quote.ConvenienceFee,
		ServiceFee:      quote.ServiceFee,
		Total:           quote.Total,
		PaymentIntentID: &intent.ID,
		Status:          models.OrderStatusPending,
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	if err := s.orders.CreateOrder(ctx, order, items); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, owner); err != nil {
		log.Printf("Failed to clear cart for user %d: %v", userID, err)
	}

	if s.mailer != nil && email != "" {
		if err := s.mailer.SendOrderConfirmationEmail(email, order.OrderNumber, order.Total); err != nil {
			log.Printf("Failed to send confirmation email for %s: %v", order.OrderNumber, err)
		}
	}

	return order, nil
}
