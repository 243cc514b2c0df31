package model

import "time"

// TimeSlot is a one-hour bookable interval owned by one consultant on
// one date. The composite unique index guards against duplicate
// generation racing past the application-level existence check.
type TimeSlot struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ConsultantID uint      `json:"consultant_id" gorm:"not null;uniqueIndex:uniq_consultant_slot"`
	Date         time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:uniq_consultant_slot"`
	StartTime    string    `json:"start_time" gorm:"size:10;not null;uniqueIndex:uniq_consultant_slot"` // "HH:MM"
	EndTime      string    `json:"end_time" gorm:"size:10;not null;uniqueIndex:uniq_consultant_slot"`   // "HH:MM"
	IsAvailable  bool      `json:"is_available" gorm:"default:true;index"`
}

// DateLayout is the wire format for slot dates.
const DateLayout = "2006-01-02"
