package repositories

import (
	"context"
	"fmt"
	"time"

	"grocery-shop/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateOrder writes the order and its item snapshot in one transaction.
// Stock, scheduled-slot capacity, and the promo usage cap are all
// re-checked under row locks before the insert.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		var stock int
		err := tx.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&stock)
		if err != nil {
			return fmt.Errorf("product %s is no longer available", item.ProductName)
		}
		if stock < item.Quantity {
			return fmt.Errorf("insufficient stock for %s", item.ProductName)
		}
	}

	if order.TimeSlotID != nil && order.ScheduledDate != nil {
		var capacity, booked int
		err := tx.QueryRow(ctx,
			`SELECT capacity FROM time_slots WHERE id = $1 FOR UPDATE`,
			*order.TimeSlotID,
		).Scan(&capacity)
		if err != nil {
			return fmt.Errorf("time slot not found")
		}

		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders
			 WHERE time_slot_id = $1 AND scheduled_date::date = $2::date AND status <> $3`,
			*order.TimeSlotID, *order.ScheduledDate, models.OrderStatusCancelled,
		).Scan(&booked)
		if err != nil {
			return err
		}
		if booked >= capacity {
			return fmt.Errorf("time slot is fully booked")
		}
	}

	if order.PromoCode != nil {
		var usageLimit int
		err := tx.QueryRow(ctx,
			`SELECT usage_limit FROM promo_codes WHERE UPPER(code) = UPPER($1) FOR UPDATE`,
			*order.PromoCode,
		).Scan(&usageLimit)
		if err != nil {
			return fmt.Errorf("promo code is no longer available")
		}

		if usageLimit > 0 {
			var used int
			err = tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM orders WHERE UPPER(promo_code) = UPPER($1) AND status <> $2`,
				*order.PromoCode, models.OrderStatusCancelled,
			).Scan(&used)
			if err != nil {
				return err
			}
			if used >= usageLimit {
				return fmt.Errorf("promo code has reached its usage limit")
			}
		}
	}

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, customer_name, address, postcode, phone,
		                     delivery_mode, time_slot_id, scheduled_date, promo_code,
		                     subtotal, discount, delivery_fee, convenience_fee, service_fee, total,
		                     payment_intent_id, status, notes, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.UserID, order.CustomerName, order.Address, order.Postcode, order.Phone,
		order.DeliveryMode, order.TimeSlotID, order.ScheduledDate, order.PromoCode,
		order.Subtotal, order.Discount, order.DeliveryFee, order.ConvenienceFee, order.ServiceFee, order.Total,
		order.PaymentIntentID, order.Status, order.Notes, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID

		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, unit, quantity, unit_price)
			 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			order.ID, items[i].ProductID, items[i].ProductName, items[i].Unit,
			items[i].Quantity, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3`,
			items[i].Quantity, now, items[i].ProductID,
		)
		if err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	order.Items = items
	return nil
}
