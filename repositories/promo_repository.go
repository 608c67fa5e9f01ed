package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"grocery-shop/models"
)

type PromoRepository struct{}

func NewPromoRepository() *PromoRepository {
	return &PromoRepository{}
}

func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), discount_type, discount_value,
		       min_order_amount, usage_limit, valid_from, valid_until, is_active, created_at
		FROM promo_codes WHERE UPPER(code) = UPPER($1)
	`

	var p models.PromoCode
	err := models.DB.QueryRow(ctx, query, strings.TrimSpace(code)).Scan(
		&p.ID, &p.Code, &p.Description, &p.DiscountType, &p.DiscountValue,
		&p.MinOrderAmount, &p.UsageLimit, &p.ValidFrom, &p.ValidUntil,
		&p.IsActive, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) CountRedemptions(ctx context.Context, code string) (int, error) {
	var count int
	err := models.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE UPPER(promo_code) = UPPER($1) AND status <> $2`,
		code, models.OrderStatusCancelled,
	).Scan(&count)
	return count, err
}
