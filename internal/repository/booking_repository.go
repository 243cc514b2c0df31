package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"eduhub/internal/model"
)

// BookingRow is a booking joined with learner and slot details.
type BookingRow struct {
	BookingID      uint      `json:"booking_id"`
	UserID         uint      `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UserPhone      string    `json:"user_phone"`
	ConsultantID   uint      `json:"consultant_id"`
	ConsultantName string    `json:"consultant_name"`
	TimeSlotID     uint      `json:"time_slot_id"`
	Date           time.Time `json:"-"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingRepository defines booking persistence operations. The slot
// claim/release writes run under WithTransaction so the availability
// check and both mutations commit or roll back together.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	FindSlotForUpdate(ctx context.Context, slotID uint) (*model.TimeSlot, error)
	UpdateSlotAvailability(ctx context.Context, slotID uint, available bool) error
	ListByConsultant(ctx context.Context, consultantID uint) ([]BookingRow, error)
	ListByUser(ctx context.Context, userID uint) ([]BookingRow, error)
	ListAll(ctx context.Context) ([]BookingRow, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a new booking record.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// Update saves an existing booking record.
func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// FindByID finds a booking by id.
func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindSlotForUpdate loads a slot with a row-level lock. Only meaningful
// inside WithTransaction.
func (r *bookingRepository) FindSlotForUpdate(ctx context.Context, slotID uint) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", slotID).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateSlotAvailability flips a slot's availability flag.
func (r *bookingRepository) UpdateSlotAvailability(ctx context.Context, slotID uint, available bool) error {
	return r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("id = ?", slotID).
		Update("is_available", available).Error
}

const bookingRowSelect = "bookings.id AS booking_id, bookings.user_id, u.name AS user_name, u.email AS user_email, " +
	"COALESCE(lp.phone, '') AS user_phone, bookings.consultant_id, c.name AS consultant_name, " +
	"bookings.time_slot_id, ts.date, ts.start_time, ts.end_time, bookings.status, bookings.created_at"

func (r *bookingRepository) bookingRows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("bookings").
		Select(bookingRowSelect).
		Joins("JOIN users u ON u.id = bookings.user_id").
		Joins("LEFT JOIN learner_profiles lp ON lp.user_id = u.id").
		Joins("JOIN users c ON c.id = bookings.consultant_id").
		Joins("JOIN time_slots ts ON ts.id = bookings.time_slot_id")
}

// ListByConsultant lists a consultant's bookings with learner and slot details.
func (r *bookingRepository) ListByConsultant(ctx context.Context, consultantID uint) ([]BookingRow, error) {
	var rows []BookingRow
	err := r.bookingRows(ctx).Where("bookings.consultant_id = ?", consultantID).Scan(&rows).Error
	return rows, err
}

// ListByUser lists a learner's own bookings with slot details.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]BookingRow, error) {
	var rows []BookingRow
	err := r.bookingRows(ctx).Where("bookings.user_id = ?", userID).Scan(&rows).Error
	return rows, err
}

// ListAll lists every booking with learner and slot details.
func (r *bookingRepository) ListAll(ctx context.Context) ([]BookingRow, error) {
	var rows []BookingRow
	err := r.bookingRows(ctx).Scan(&rows).Error
	return rows, err
}

// WithTransaction executes fn against a transaction-scoped repository.
func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
