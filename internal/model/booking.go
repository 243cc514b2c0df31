package model

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// ValidBookingStatus reports whether s is one of the three states.
func ValidBookingStatus(s BookingStatus) bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Booking is the claim a learner holds on a consultant time slot.
// The slot's availability is owned by at most one non-cancelled
// booking at a time.
type Booking struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UserID       uint          `json:"user_id" gorm:"not null;index"`
	ConsultantID uint          `json:"consultant_id" gorm:"not null;index"`
	TimeSlotID   uint          `json:"time_slot_id" gorm:"not null;index"`
	Status       BookingStatus `json:"status" gorm:"size:50;not null;default:'Pending';index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	TimeSlot TimeSlot `json:"-" gorm:"foreignKey:TimeSlotID"`
}
