package models

import "time"

// TimeSlot is a bookable delivery window with a capacity cap. Availability
// for a given date is capacity minus orders already booked into the slot.
type TimeSlot struct {
	ID        int       `json:"id"`
	Label     string    `json:"label"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Capacity  int       `json:"capacity"`
	Fee       float64   `json:"fee"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type TimeSlotAvailability struct {
	TimeSlot
	Booked    int  `json:"booked"`
	Available bool `json:"available"`
}

type Postcode struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Area      string    `json:"area"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
