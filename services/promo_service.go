package services

import (
	"context"
	"errors"
	"time"

	"grocery-shop/cart"
	"grocery-shop/models"
)

var (
	ErrPromoNotFound    = errors.New("promo code not found")
	ErrPromoInactive    = errors.New("promo code is no longer active")
	ErrPromoNotStarted  = errors.New("promo code is not yet valid")
	ErrPromoExpired     = errors.New("promo code has expired")
	ErrPromoMinOrder    = errors.New("order does not meet the promo minimum")
	ErrPromoUsageCapped = errors.New("promo code usage limit reached")
)

type PromoRepo interface {
	GetByCode(ctx context.Context, code string) (*models.PromoCode, error)
	CountRedemptions(ctx context.Context, code string) (int, error)
}

type PromoService struct {
	repo PromoRepo
}

func NewPromoService(repo PromoRepo) *PromoService {
	return &PromoService{repo: repo}
}

// Validate checks a promo code against a subtotal and returns the promo and
// the discount it contributes. At most one promo applies per cart; checkout
// re-runs this validation server-side before writing the order.
func (s *PromoService) Validate(ctx context.Context, code string, subtotal float64) (*models.PromoCode, float64, error) {
	promo, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if promo == nil {
		return nil, 0, ErrPromoNotFound
	}

	if !promo.IsActive {
		return nil, 0, ErrPromoInactive
	}

	now := time.Now()
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return nil, 0, ErrPromoNotStarted
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return nil, 0, ErrPromoExpired
	}

	if subtotal < promo.MinOrderAmount {
		return nil, 0, ErrPromoMinOrder
	}

	if promo.UsageLimit > 0 {
		used, err := s.repo.CountRedemptions(ctx, promo.Code)
		if err != nil {
			return nil, 0, err
		}
		if used >= promo.UsageLimit {
			return nil, 0, ErrPromoUsageCapped
		}
	}

	discount := cart.DiscountAmount(subtotal, promo.DiscountType, promo.DiscountValue)
	return promo, discount, nil
}
