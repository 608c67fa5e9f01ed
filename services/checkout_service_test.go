package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"grocery-shop/cart"
	"grocery-shop/libs"
	"grocery-shop/models"
)

type fakeCatalog struct{ err error }

func (f *fakeCatalog) RefreshCart(ctx context.Context, c *cart.Cart) error { return f.err }

type fakePayments struct {
	createErr error
	paid      bool
	lastTotal float64
}

func (f *fakePayments) CreateIntent(ctx context.Context, amount float64, ref string) (*libs.PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastTotal = amount
	return &libs.PaymentIntent{ID: "pi_test", Status: "requires_confirmation"}, nil
}

func (f *fakePayments) VerifyPayment(ctx context.Context, id string) (bool, error) {
	return f.paid, nil
}

type fakeOrders struct {
	created *models.Order
	items   []models.OrderItem
	err     error
}

func (f *fakeOrders) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if f.err != nil {
		return f.err
	}
	order.ID = 42
	f.created = order
	f.items = items
	return nil
}

type fakeMailer struct{ sent []string }

func (f *fakeMailer) SendOrderConfirmationEmail(to, orderNumber string, total float64) error {
	f.sent = append(f.sent, orderNumber)
	return nil
}

func seedCart(t *testing.T, store cart.Store, userID int) {
	t.Helper()
	c := cart.New()
	c.Add(cart.LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00, Unit: "kg"}, 3)
	c.Add(cart.LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 1)
	if err := store.Save(context.Background(), strconv.Itoa(userID), c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func validRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		FullName:      "Jess Doe",
		Address:       "1 High Street",
		Postcode:      "SW1A 1AA",
		Phone:         "07700900000",
		DeliveryMode:  models.DeliveryModeExpress,
		TermsAccepted: true,
	}
}

func newCheckoutFixture(payments *fakePayments, orders *fakeOrders) (*CheckoutService, cart.Store, *fakeMailer) {
	carts := cart.NewMemoryStore()
	mailer := &fakeMailer{}
	promos := NewPromoService(&fakePromoRepo{promo: activePromo()})
	delivery := NewDeliveryService(&fakeDeliveryRepo{postcodes: map[string]bool{"SW1A 1AA": true}}, 5.00)

	svc := NewCheckoutService(carts, &fakeCatalog{}, promos, delivery, payments, orders, mailer, cart.FeeRates{})
	return svc, carts, mailer
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path writes order and clears cart", func(t *testing.T) {
		payments := &fakePayments{paid: true}
		orders := &fakeOrders{}
		svc, carts, mailer := newCheckoutFixture(payments, orders)
		seedCart(t, carts, 7)

		req := validRequest()
		req.PromoCode = "SAVE10"

		order, err := svc.Checkout(ctx, 7, "jess@example.com", req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 10.50 subtotal, 1.05 discount, 5.00 delivery
		if order.Total != 14.45 {
			t.Fatalf("expected total 14.45, got %v", order.Total)
		}
		if payments.lastTotal != 14.45 {
			t.Fatalf("payment intent created with %v, want 14.45", payments.lastTotal)
		}
		if orders.created == nil || orders.created.ID != 42 {
			t.Fatal("order was not persisted")
		}
		if len(orders.items) != 2 {
			t.Fatalf("expected 2 order items, got %d", len(orders.items))
		}

		c, _ := carts.Load(ctx, "7")
		if !c.IsEmpty() {
			t.Fatal("cart was not cleared after checkout")
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected 1 confirmation email, got %d", len(mailer.sent))
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc, carts, _ := newCheckoutFixture(&fakePayments{paid: true}, &fakeOrders{})
		seedCart(t, carts, 7)

		req := validRequest()
		req.Phone = ""

		_, err := svc.Checkout(ctx, 7, "", req)
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
	})

	t.Run("terms not accepted", func(t *testing.T) {
		svc, carts, _ := newCheckoutFixture(&fakePayments{paid: true}, &fakeOrders{})
		seedCart(t, carts, 7)

		req := validRequest()
		req.TermsAccepted = false

		_, err := svc.Checkout(ctx, 7, "", req)
		if !errors.Is(err, ErrTermsNotAccepted) {
			t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		svc, _, _ := newCheckoutFixture(&fakePayments{paid: true}, &fakeOrders{})

		_, err := svc.Checkout(ctx, 7, "", validRequest())
		if !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("unserviceable postcode", func(t *testing.T) {
		svc, carts, _ := newCheckoutFixture(&fakePayments{paid: true}, &fakeOrders{})
		seedCart(t, carts, 7)

		req := validRequest()
		req.Postcode = "ZZ9 9ZZ"

		_, err := svc.Checkout(ctx, 7, "", req)
		if !errors.Is(err, ErrPostcodeNotServed) {
			t.Fatalf("expected ErrPostcodeNotServed, got %v", err)
		}
	})

	t.Run("declined payment leaves cart intact", func(t *testing.T) {
		orders := &fakeOrders{}
		svc, carts, _ := newCheckoutFixture(&fakePayments{paid: false}, orders)
		seedCart(t, carts, 7)

		_, err := svc.Checkout(ctx, 7, "", validRequest())
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
		if orders.created != nil {
			t.Fatal("order must not be written on declined payment")
		}

		c, _ := carts.Load(ctx, "7")
		if c.IsEmpty() {
			t.Fatal("cart must survive a failed checkout for manual resubmission")
		}
	})

	t.Run("payment service failure surfaces to caller", func(t *testing.T) {
		svc, carts, _ := newCheckoutFixture(&fakePayments{createErr: errors.New("gateway down")}, &fakeOrders{})
		seedCart(t, carts, 7)

		if _, err := svc.Checkout(ctx, 7, "", validRequest()); err == nil {
			t.Fatal("expected error from payment gateway")
		}
	})

	t.Run("back-to-back checkouts get distinct order numbers", func(t *testing.T) {
		payments := &fakePayments{paid: true}
		svc, carts, _ := newCheckoutFixture(payments, &fakeOrders{})

		seedCart(t, carts, 7)
		first, err := svc.Checkout(ctx, 7, "", validRequest())
		if err != nil {
			t.Fatalf("first checkout: %v", err)
		}

		seedCart(t, carts, 7)
		second, err := svc.Checkout(ctx, 7, "", validRequest())
		if err != nil {
			t.Fatalf("second checkout: %v", err)
		}

		if first.OrderNumber == second.OrderNumber {
			t.Fatalf("both orders got number %q", first.OrderNumber)
		}
	})

	t.Run("order write failure keeps cart for resubmission", func(t *testing.T) {
		orders := &fakeOrders{err: errors.New("promo code has reached its usage limit")}
		svc, carts, mailer := newCheckoutFixture(&fakePayments{paid: true}, orders)
		seedCart(t, carts, 7)

		req := validRequest()
		req.PromoCode = "SAVE10"

		_, err := svc.Checkout(ctx, 7, "jess@example.com", req)
		if err == nil || err.Error() != "promo code has reached its usage limit" {
			t.Fatalf("expected usage limit error, got %v", err)
		}

		c, _ := carts.Load(ctx, "7")
		if c.IsEmpty() {
			t.Fatal("cart must survive a failed order write")
		}
		if len(mailer.sent) != 0 {
			t.Fatal("no confirmation email on a failed order write")
		}
	})

	t.Run("invalid promo blocks checkout", func(t *testing.T) {
		svc, carts, _ := newCheckoutFixture(&fakePayments{paid: true}, &fakeOrders{})
		seedCart(t, carts, 7)

		req := validRequest()
		req.PromoCode = "BOGUS"

		_, err := svc.Checkout(ctx, 7, "", req)
		if !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})
}
