package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"eduhub/internal/model"
)

// SlotRepository defines consultant time-slot persistence operations.
type SlotRepository interface {
	Exists(ctx context.Context, consultantID uint, date time.Time, startTime, endTime string) (bool, error)
	Create(ctx context.Context, slot *model.TimeSlot) error
	FindByID(ctx context.Context, id uint) (*model.TimeSlot, error)
	ListAvailable(ctx context.Context, consultantID uint, date *time.Time) ([]model.TimeSlot, error)
	CountByConsultant(ctx context.Context, consultantID uint) (total, booked int64, err error)
}

type slotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

// Exists reports whether an identical slot is already persisted.
func (r *slotRepository) Exists(ctx context.Context, consultantID uint, date time.Time, startTime, endTime string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("consultant_id = ? AND date = ? AND start_time = ? AND end_time = ?",
			consultantID, date.Format(model.DateLayout), startTime, endTime).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new time slot.
func (r *slotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// FindByID finds a slot by id.
func (r *slotRepository) FindByID(ctx context.Context, id uint) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListAvailable lists a consultant's open slots, optionally for one date.
func (r *slotRepository) ListAvailable(ctx context.Context, consultantID uint, date *time.Time) ([]model.TimeSlot, error) {
	q := r.db.WithContext(ctx).
		Where("consultant_id = ? AND is_available = ?", consultantID, true)
	if date != nil {
		q = q.Where("date = ?", date.Format(model.DateLayout))
	}
	var slots []model.TimeSlot
	if err := q.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// CountByConsultant returns total and booked slot counts for a consultant.
func (r *slotRepository) CountByConsultant(ctx context.Context, consultantID uint) (int64, int64, error) {
	var total, booked int64
	if err := r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("consultant_id = ?", consultantID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("consultant_id = ? AND is_available = ?", consultantID, false).
		Count(&booked).Error; err != nil {
		return 0, 0, err
	}
	return total, booked, nil
}
