package services

import (
	"context"
	"errors"
	"time"

	"grocery-shop/models"
)

var (
	ErrPostcodeNotServed = errors.New("postcode is outside the delivery area")
	ErrSlotNotFound      = errors.New("time slot not found")
	ErrSlotInactive      = errors.New("time slot is not available")
	ErrSlotFull          = errors.New("time slot is fully booked")
	ErrSlotDateRequired  = errors.New("scheduled delivery requires a date and time slot")
	ErrSlotDateInvalid   = errors.New("invalid scheduled date")
	ErrInvalidMode       = errors.New("invalid delivery mode")
)

type DeliveryRepo interface {
	GetTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error)
	CountSlotBookings(ctx context.Context, slotID int, date time.Time) (int, error)
	PostcodeServiceable(ctx context.Context, code string) (bool, error)
}

// Selection is the resolved delivery choice carried into checkout.
type Selection struct {
	Mode          string
	Fee           float64
	TimeSlotID    *int
	ScheduledDate *time.Time
}

type DeliveryService struct {
	repo       DeliveryRepo
	expressFee float64
}

func NewDeliveryService(repo DeliveryRepo, expressFee float64) *DeliveryService {
	return &DeliveryService{repo: repo, expressFee: expressFee}
}

func (s *DeliveryService) CheckPostcode(ctx context.Context, code string) error {
	ok, err := s.repo.PostcodeServiceable(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostcodeNotServed
	}
	return nil
}

// Resolve turns a checkout request into a delivery selection. Express is a
// flat fee; scheduled requires an active slot with remaining capacity on
// the requested date.
func (s *DeliveryService) Resolve(ctx context.Context, mode string, timeSlotID int, scheduledDate string) (*Selection, error) {
	switch mode {
	case models.DeliveryModeExpress:
		return &Selection{Mode: mode, Fee: s.expressFee}, nil

	case models.DeliveryModeScheduled:
		if timeSlotID == 0 || scheduledDate == "" {
			return nil, ErrSlotDateRequired
		}

		date, err := time.Parse("2006-01-02", scheduledDate)
		if err != nil {
			return nil, ErrSlotDateInvalid
		}

		slot, err := s.repo.GetTimeSlot(ctx, timeSlotID)
		if err != nil {
			return nil, err
		}
		if slot == nil {
			return nil, ErrSlotNotFound
		}
		if !slot.IsActive {
			return nil, ErrSlotInactive
		}

		booked, err := s.repo.CountSlotBookings(ctx, slot.ID, date)
		if err != nil {
			return nil, err
		}
		if booked >= slot.Capacity {
			return nil, ErrSlotFull
		}

		return &Selection{
			Mode:          mode,
			Fee:           slot.Fee,
			TimeSlotID:    &slot.ID,
			ScheduledDate: &date,
		}, nil
	}

	return nil, ErrInvalidMode
}

// Availability reports remaining capacity for every active slot on a date.
func (s *DeliveryService) Availability(ctx context.Context, slots []models.TimeSlot, date time.Time) ([]models.TimeSlotAvailability, error) {
	result := make([]models.TimeSlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked, err := s.repo.CountSlotBookings(ctx, slot.ID, date)
		if err != nil {
			return nil, err
		}
		result = append(result, models.TimeSlotAvailability{
			TimeSlot:  slot,
			Booked:    booked,
			Available: slot.IsActive && booked < slot.Capacity,
		})
	}
	return result, nil
}
