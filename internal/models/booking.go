package models

import "time"

// Booking is a completed widget booking. Reference is unique so a retried
// submission of the same flow never inserts twice; a slot holds at most one
// scheduled booking.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:500" json:"notes"`

	Date      time.Time `gorm:"type:date;index" json:"date"`
	SlotID    string    `gorm:"size:32;not null;index:idx_bookings_active_slot,unique,where:status = 'scheduled'" json:"slot_id"`
	SlotTime  string    `gorm:"size:5" json:"slot_time"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Lang   string `gorm:"size:5" json:"lang"`
	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	BookingStatusScheduled = "scheduled"

	ActiveSlotIndex = "idx_bookings_active_slot"
)
