package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"grocery-shop/models"
)

type DeliveryRepository struct{}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{}
}

func (r *DeliveryRepository) GetTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	query := `
		SELECT id, label, start_time, end_time, capacity, fee, is_active, created_at
		FROM time_slots WHERE id = $1
	`

	var slot models.TimeSlot
	err := models.DB.QueryRow(ctx, query, id).Scan(
		&slot.ID, &slot.Label, &slot.StartTime, &slot.EndTime,
		&slot.Capacity, &slot.Fee, &slot.IsActive, &slot.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *DeliveryRepository) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT id, label, start_time, end_time, capacity, fee, is_active, created_at
		 FROM time_slots WHERE is_active = true ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []models.TimeSlot{}
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(
			&slot.ID, &slot.Label, &slot.StartTime, &slot.EndTime,
			&slot.Capacity, &slot.Fee, &slot.IsActive, &slot.CreatedAt,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (r *DeliveryRepository) CreateTimeSlot(ctx context.Context, req models.CreateTimeSlotRequest) (int, error) {
	var id int
	err := models.DB.QueryRow(ctx,
		`INSERT INTO time_slots (label, start_time, end_time, capacity, fee, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, true, $6) RETURNING id`,
		req.Label, req.StartTime, req.EndTime, req.Capacity, req.Fee, time.Now(),
	).Scan(&id)
	return id, err
}

// UpdateTimeSlot applies only the fields that were sent. Returns false when
// the slot does not exist.
func (r *DeliveryRepository) UpdateTimeSlot(ctx context.Context, id string, capacity *int, fee *float64, isActive *bool) (bool, error) {
	result, err := models.DB.Exec(ctx,
		`UPDATE time_slots SET
		   capacity = COALESCE($1, capacity),
		   fee = COALESCE($2, fee),
		   is_active = COALESCE($3, is_active)
		 WHERE id = $4`,
		capacity, fee, isActive, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *DeliveryRepository) DeactivateTimeSlot(ctx context.Context, id string) (bool, error) {
	result, err := models.DB.Exec(ctx, "UPDATE time_slots SET is_active = false WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *DeliveryRepository) CountSlotBookings(ctx context.Context, slotID int, date time.Time) (int, error) {
	var count int
	err := models.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders
		 WHERE time_slot_id = $1 AND scheduled_date::date = $2::date AND status <> $3`,
		slotID, date, models.OrderStatusCancelled,
	).Scan(&count)
	return count, err
}

func (r *DeliveryRepository) PostcodeServiceable(ctx context.Context, code string) (bool, error) {
	var count int
	err := models.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM postcodes WHERE UPPER(code) = UPPER($1) AND is_active = true`,
		strings.TrimSpace(code),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
