package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery-shop/models"
)

type fakeDeliveryRepo struct {
	slot      *models.TimeSlot
	booked    int
	postcodes map[string]bool
}

func (f *fakeDeliveryRepo) GetTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	if f.slot != nil && f.slot.ID == id {
		return f.slot, nil
	}
	return nil, nil
}

func (f *fakeDeliveryRepo) CountSlotBookings(ctx context.Context, slotID int, date time.Time) (int, error) {
	return f.booked, nil
}

func (f *fakeDeliveryRepo) PostcodeServiceable(ctx context.Context, code string) (bool, error) {
	return f.postcodes[code], nil
}

func morningSlot() *models.TimeSlot {
	return &models.TimeSlot{
		ID:       3,
		Label:    "Morning",
		Capacity: 10,
		Fee:      2.99,
		IsActive: true,
	}
}

func TestResolveDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("express uses the flat fee", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{}, 4.99)

		sel, err := svc.Resolve(ctx, models.DeliveryModeExpress, 0, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Fee != 4.99 {
			t.Fatalf("expected fee 4.99, got %v", sel.Fee)
		}
		if sel.TimeSlotID != nil {
			t.Fatal("express delivery should carry no slot")
		}
	})

	t.Run("scheduled resolves slot fee and date", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{slot: morningSlot()}, 4.99)

		sel, err := svc.Resolve(ctx, models.DeliveryModeScheduled, 3, "2026-09-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Fee != 2.99 {
			t.Fatalf("expected slot fee 2.99, got %v", sel.Fee)
		}
		if sel.TimeSlotID == nil || *sel.TimeSlotID != 3 {
			t.Fatalf("expected slot 3, got %v", sel.TimeSlotID)
		}
		if sel.ScheduledDate == nil || sel.ScheduledDate.Day() != 1 {
			t.Fatalf("scheduled date not carried: %v", sel.ScheduledDate)
		}
	})

	t.Run("scheduled without slot is rejected", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{}, 4.99)

		_, err := svc.Resolve(ctx, models.DeliveryModeScheduled, 0, "")
		if !errors.Is(err, ErrSlotDateRequired) {
			t.Fatalf("expected ErrSlotDateRequired, got %v", err)
		}
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{slot: morningSlot()}, 4.99)

		_, err := svc.Resolve(ctx, models.DeliveryModeScheduled, 3, "tomorrow")
		if !errors.Is(err, ErrSlotDateInvalid) {
			t.Fatalf("expected ErrSlotDateInvalid, got %v", err)
		}
	})

	t.Run("full slot is rejected", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{slot: morningSlot(), booked: 10}, 4.99)

		_, err := svc.Resolve(ctx, models.DeliveryModeScheduled, 3, "2026-09-01")
		if !errors.Is(err, ErrSlotFull) {
			t.Fatalf("expected ErrSlotFull, got %v", err)
		}
	})

	t.Run("inactive slot is rejected", func(t *testing.T) {
		slot := morningSlot()
		slot.IsActive = false
		svc := NewDeliveryService(&fakeDeliveryRepo{slot: slot}, 4.99)

		_, err := svc.Resolve(ctx, models.DeliveryModeScheduled, 3, "2026-09-01")
		if !errors.Is(err, ErrSlotInactive) {
			t.Fatalf("expected ErrSlotInactive, got %v", err)
		}
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		svc := NewDeliveryService(&fakeDeliveryRepo{}, 4.99)

		_, err := svc.Resolve(ctx, "teleport", 0, "")
		if !errors.Is(err, ErrInvalidMode) {
			t.Fatalf("expected ErrInvalidMode, got %v", err)
		}
	})
}

func TestCheckPostcode(t *testing.T) {
	ctx := context.Background()
	svc := NewDeliveryService(&fakeDeliveryRepo{postcodes: map[string]bool{"SW1A 1AA": true}}, 4.99)

	if err := svc.CheckPostcode(ctx, "SW1A 1AA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CheckPostcode(ctx, "ZZ9 9ZZ"); !errors.Is(err, ErrPostcodeNotServed) {
		t.Fatalf("expected ErrPostcodeNotServed, got %v", err)
	}
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDeliveryRepo{booked: 10}
	svc := NewDeliveryService(repo, 4.99)

	slots := []models.TimeSlot{*morningSlot()}
	result, err := svc.Availability(ctx, slots, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(result))
	}
	if result[0].Available {
		t.Fatal("fully booked slot reported available")
	}
	if result[0].Booked != 10 {
		t.Fatalf("expected 10 booked, got %d", result[0].Booked)
	}
}
