package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "eduhub/internal/errors"
	"eduhub/internal/model"
	"eduhub/internal/repository"
)

// ConsultationFee is the flat per-booking consultation rate. Stands in
// for a real billing ledger.
var ConsultationFee = decimal.NewFromInt(5000)

// BookingConfirmation is the caller-facing result of claiming a slot.
type BookingConfirmation struct {
	BookingID       uint            `json:"booking_id"`
	ConsultantName  string          `json:"consultant_name"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	Status          string          `json:"status"`
	RequiresPayment bool            `json:"requires_payment"`
	Amount          decimal.Decimal `json:"amount"`
}

// PaymentReceipt is the result of a successful dummy payment.
type PaymentReceipt struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// BookingService owns the booking lifecycle: slot claim, payment
// confirmation, cancellation and consultant status override.
type BookingService interface {
	CreateBooking(ctx context.Context, userID, slotID uint) (*BookingConfirmation, error)
	ListConsultantBookings(ctx context.Context, consultantID uint) ([]repository.BookingRow, error)
	ListUserBookings(ctx context.Context, userID uint) ([]repository.BookingRow, error)
	ListAllBookings(ctx context.Context) ([]repository.BookingRow, error)
	CancelBooking(ctx context.Context, callerID, bookingID uint) error
	ProcessPayment(ctx context.Context, callerID, bookingID uint, card CardDetails) (*PaymentReceipt, error)
	PaymentStatus(ctx context.Context, callerID, bookingID uint) (status model.BookingStatus, requiresPayment bool, err error)
	UpdateStatus(ctx context.Context, callerID, bookingID uint, newStatus model.BookingStatus) error
}

type bookingService struct {
	userRepo    repository.UserRepository
	slotRepo    repository.SlotRepository
	bookingRepo repository.BookingRepository
	gateway     PaymentGateway
}

// NewBookingService creates a new booking service.
func NewBookingService(
	userRepo repository.UserRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	gateway PaymentGateway,
) BookingService {
	return &bookingService{
		userRepo:    userRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
	}
}

// CreateBooking claims an available slot for a learner. The availability
// check, booking insert and slot flip run in one transaction with a row
// lock on the slot, so two learners racing for the same slot cannot both
// win.
func (s *bookingService) CreateBooking(ctx context.Context, userID, slotID uint) (*BookingConfirmation, error) {
	// Only learners hold bookings; a consultant or admin token is not a
	// valid booking owner.
	if _, _, err := s.userRepo.FindLearner(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find learner: %w", err)
	}

	var booking *model.Booking
	var slot *model.TimeSlot
	err := s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookingRepository) error {
		var err error
		slot, err = txRepo.FindSlotForUpdate(ctx, slotID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrSlotNotFound
			}
			return fmt.Errorf("lock slot: %w", err)
		}
		if !slot.IsAvailable {
			return apperrors.ErrSlotUnavailable
		}

		booking = &model.Booking{
			UserID:       userID,
			ConsultantID: slot.ConsultantID,
			TimeSlotID:   slot.ID,
			Status:       model.BookingStatusPending,
		}
		if err := txRepo.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return txRepo.UpdateSlotAvailability(ctx, slot.ID, false)
	})
	if err != nil {
		return nil, err
	}

	consultantName := "Unknown"
	if consultant, err := s.userRepo.FindByID(ctx, slot.ConsultantID); err == nil {
		consultantName = consultant.Name
		if consultantName == "" {
			consultantName = consultant.Email
		}
	}

	return &BookingConfirmation{
		BookingID:       booking.ID,
		ConsultantName:  consultantName,
		Date:            slot.Date.Format(model.DateLayout),
		Time:            fmt.Sprintf("%s - %s", slot.StartTime, slot.EndTime),
		Status:          string(model.BookingStatusPending),
		RequiresPayment: true,
		Amount:          ConsultationFee,
	}, nil
}

// ListConsultantBookings lists a consultant's bookings with learner and
// slot details. Authorization happens at the handler.
func (s *bookingService) ListConsultantBookings(ctx context.Context, consultantID uint) ([]repository.BookingRow, error) {
	return s.bookingRepo.ListByConsultant(ctx, consultantID)
}

// ListUserBookings lists a learner's own bookings.
func (s *bookingService) ListUserBookings(ctx context.Context, userID uint) ([]repository.BookingRow, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// ListAllBookings lists every booking for the admin surface.
func (s *bookingService) ListAllBookings(ctx context.Context) ([]repository.BookingRow, error) {
	return s.bookingRepo.ListAll(ctx)
}

// CancelBooking moves an owned booking to Cancelled and frees its slot,
// both in one transaction. The owner may cancel from any prior status.
func (s *bookingService) CancelBooking(ctx context.Context, callerID, bookingID uint) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != callerID {
		return apperrors.ErrNotOwner
	}
	if booking.Status == model.BookingStatusCancelled {
		// Already cancelled: the slot may since have been claimed by
		// another booking, so it must not be freed again.
		return nil
	}

	return s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookingRepository) error {
		booking.Status = model.BookingStatusCancelled
		if err := txRepo.Update(ctx, booking); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return txRepo.UpdateSlotAvailability(ctx, booking.TimeSlotID, true)
	})
}

// ProcessPayment runs the dummy gateway against an owned, pending
// booking and confirms it on success.
func (s *bookingService) ProcessPayment(ctx context.Context, callerID, bookingID uint, card CardDetails) (*PaymentReceipt, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != callerID {
		return nil, apperrors.ErrNotOwner
	}
	if booking.Status != model.BookingStatusPending {
		return nil, apperrors.ErrBookingNotPending
	}

	transactionID, err := s.gateway.Authorize(ctx, card, ConsultationFee)
	if err != nil {
		return nil, err
	}

	booking.Status = model.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	return &PaymentReceipt{
		TransactionID: transactionID,
		Amount:        ConsultationFee,
		Status:        string(model.BookingStatusConfirmed),
	}, nil
}

// PaymentStatus reports an owned booking's status and whether payment
// is still due.
func (s *bookingService) PaymentStatus(ctx context.Context, callerID, bookingID uint) (model.BookingStatus, bool, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return "", false, err
	}
	if booking.UserID != callerID {
		return "", false, apperrors.ErrNotOwner
	}
	return booking.Status, booking.Status == model.BookingStatusPending, nil
}

// UpdateStatus is the consultant override: the assigned consultant may
// move a booking to any of the three states. Slot availability stays
// consistent with the new state: entering Cancelled frees the slot,
// leaving Cancelled re-claims it (conflict if the slot was re-booked).
func (s *bookingService) UpdateStatus(ctx context.Context, callerID, bookingID uint, newStatus model.BookingStatus) error {
	if !model.ValidBookingStatus(newStatus) {
		return apperrors.ErrInvalidStatus
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ConsultantID != callerID {
		return apperrors.ErrForbidden
	}

	oldStatus := booking.Status
	return s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookingRepository) error {
		if oldStatus != model.BookingStatusCancelled && newStatus == model.BookingStatusCancelled {
			if err := txRepo.UpdateSlotAvailability(ctx, booking.TimeSlotID, true); err != nil {
				return fmt.Errorf("free slot: %w", err)
			}
		}
		if oldStatus == model.BookingStatusCancelled && newStatus != model.BookingStatusCancelled {
			slot, err := txRepo.FindSlotForUpdate(ctx, booking.TimeSlotID)
			if err != nil {
				return fmt.Errorf("lock slot: %w", err)
			}
			if !slot.IsAvailable {
				return apperrors.ErrSlotUnavailable
			}
			if err := txRepo.UpdateSlotAvailability(ctx, booking.TimeSlotID, false); err != nil {
				return fmt.Errorf("claim slot: %w", err)
			}
		}

		booking.Status = newStatus
		if err := txRepo.Update(ctx, booking); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
}

func (s *bookingService) findBooking(ctx context.Context, bookingID uint) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}
