package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery-shop/models"
)

type fakePromoRepo struct {
	promo       *models.PromoCode
	redemptions int
}

func (f *fakePromoRepo) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	if f.promo != nil && f.promo.Code == code {
		return f.promo, nil
	}
	return nil, nil
}

func (f *fakePromoRepo) CountRedemptions(ctx context.Context, code string) (int, error) {
	return f.redemptions, nil
}

func activePromo() *models.PromoCode {
	return &models.PromoCode{
		ID:            1,
		Code:          "SAVE10",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
	}
}

func TestValidatePromo(t *testing.T) {
	ctx := context.Background()

	t.Run("valid percentage promo", func(t *testing.T) {
		svc := NewPromoService(&fakePromoRepo{promo: activePromo()})

		promo, discount, err := svc.Validate(ctx, "SAVE10", 10.50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if promo.Code != "SAVE10" {
			t.Fatalf("wrong promo returned: %s", promo.Code)
		}
		if discount != 1.05 {
			t.Fatalf("expected discount 1.05, got %v", discount)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := NewPromoService(&fakePromoRepo{})

		_, _, err := svc.Validate(ctx, "NOPE", 50)
		if !errors.Is(err, ErrPromoNotFound) {
			t.Fatalf("expected ErrPromoNotFound, got %v", err)
		}
	})

	t.Run("inactive code", func(t *testing.T) {
		p := activePromo()
		p.IsActive = false
		svc := NewPromoService(&fakePromoRepo{promo: p})

		_, _, err := svc.Validate(ctx, "SAVE10", 50)
		if !errors.Is(err, ErrPromoInactive) {
			t.Fatalf("expected ErrPromoInactive, got %v", err)
		}
	})

	t.Run("outside validity window", func(t *testing.T) {
		p := activePromo()
		past := time.Now().Add(-time.Hour)
		p.ValidUntil = &past
		svc := NewPromoService(&fakePromoRepo{promo: p})

		_, _, err := svc.Validate(ctx, "SAVE10", 50)
		if !errors.Is(err, ErrPromoExpired) {
			t.Fatalf("expected ErrPromoExpired, got %v", err)
		}
	})

	t.Run("not yet started", func(t *testing.T) {
		p := activePromo()
		future := time.Now().Add(time.Hour)
		p.ValidFrom = &future
		svc := NewPromoService(&fakePromoRepo{promo: p})

		_, _, err := svc.Validate(ctx, "SAVE10", 50)
		if !errors.Is(err, ErrPromoNotStarted) {
			t.Fatalf("expected ErrPromoNotStarted, got %v", err)
		}
	})

	t.Run("below minimum order", func(t *testing.T) {
		p := activePromo()
		p.MinOrderAmount = 25
		svc := NewPromoService(&fakePromoRepo{promo: p})

		_, _, err := svc.Validate(ctx, "SAVE10", 10)
		if !errors.Is(err, ErrPromoMinOrder) {
			t.Fatalf("expected ErrPromoMinOrder, got %v", err)
		}
	})

	t.Run("usage cap reached", func(t *testing.T) {
		p := activePromo()
		p.UsageLimit = 100
		svc := NewPromoService(&fakePromoRepo{promo: p, redemptions: 100})

		_, _, err := svc.Validate(ctx, "SAVE10", 50)
		if !errors.Is(err, ErrPromoUsageCapped) {
			t.Fatalf("expected ErrPromoUsageCapped, got %v", err)
		}
	})

	t.Run("fixed discount never exceeds subtotal", func(t *testing.T) {
		p := activePromo()
		p.DiscountType = models.DiscountTypeFixed
		p.DiscountValue = 20
		svc := NewPromoService(&fakePromoRepo{promo: p})

		_, discount, err := svc.Validate(ctx, "SAVE10", 12.30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if discount != 12.30 {
			t.Fatalf("expected discount capped at 12.30, got %v", discount)
		}
	})
}
