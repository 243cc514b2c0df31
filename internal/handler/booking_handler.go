package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"eduhub/internal/errors"
	"eduhub/internal/model"
	"eduhub/internal/repository"
	"eduhub/internal/service"
)

// BookingHandler handles time-slot and booking lifecycle endpoints.
type BookingHandler struct {
	slotService       service.SlotService
	bookingService    service.BookingService
	consultantService service.ConsultantService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(
	slotService service.SlotService,
	bookingService service.BookingService,
	consultantService service.ConsultantService,
) *BookingHandler {
	return &BookingHandler{
		slotService:       slotService,
		bookingService:    bookingService,
		consultantService: consultantService,
	}
}

// TimeSlotItem is a bookable slot in wire format.
type TimeSlotItem struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GenerateSlotsRequest controls slot generation.
type GenerateSlotsRequest struct {
	ConsultantID *uint  `json:"consultant_id"`
	NumWeeks     int    `json:"num_weeks" validate:"required,min=1"`
	StartDate    string `json:"start_date"`
}

// CreateBookingRequest claims a time slot.
type CreateBookingRequest struct {
	TimeSlotID uint `json:"time_slot_id" validate:"required"`
}

// UpdateStatusRequest is the consultant status override.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateEmploymentRequest changes a consultant's employment attributes.
type UpdateEmploymentRequest struct {
	Presence string `json:"presence"`
	Shift    string `json:"shift"`
}

// ProcessPaymentRequest carries the dummy card submission.
type ProcessPaymentRequest struct {
	BookingID      uint   `json:"booking_id" validate:"required"`
	CardNumber     string `json:"card_number" validate:"required"`
	ExpiryMonth    string `json:"expiry_month" validate:"required"`
	ExpiryYear     string `json:"expiry_year" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	CardholderName string `json:"cardholder_name" validate:"required"`
}

// BookingItem is a booking joined with learner and slot details in wire format.
type BookingItem struct {
	BookingID      uint   `json:"booking_id"`
	UserID         uint   `json:"user_id"`
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email"`
	UserPhone      string `json:"user_phone"`
	ConsultantID   uint   `json:"consultant_id"`
	ConsultantName string `json:"consultant_name"`
	TimeSlotID     uint   `json:"time_slot_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func toBookingItems(rows []repository.BookingRow) []BookingItem {
	items := make([]BookingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, BookingItem{
			BookingID:      row.BookingID,
			UserID:         row.UserID,
			UserName:       row.UserName,
			UserEmail:      row.UserEmail,
			UserPhone:      row.UserPhone,
			ConsultantID:   row.ConsultantID,
			ConsultantName: row.ConsultantName,
			TimeSlotID:     row.TimeSlotID,
			Date:           row.Date.Format(model.DateLayout),
			StartTime:      row.StartTime,
			EndTime:        row.EndTime,
			Status:         row.Status,
			CreatedAt:      row.CreatedAt.Format(time.RFC3339),
		})
	}
	return items
}

// GetConsultantTimeSlots godoc
// @Summary List a consultant's available time slots
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Param consultant_id path int true "Consultant ID"
// @Param date query string false "Filter date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/consultants/{consultant_id}/timeslots [get]
func (h *BookingHandler) GetConsultantTimeSlots(c echo.Context) error {
	consultantID, err := pathID(c, "consultant_id")
	if err != nil {
		return err
	}

	var dateFilter *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return domainError(errors.ErrInvalidDate)
		}
		dateFilter = &parsed
	}

	slots, err := h.slotService.ListAvailable(c.Request().Context(), consultantID, dateFilter)
	if err != nil {
		return domainError(err)
	}

	items := make([]TimeSlotItem, 0, len(slots))
	for _, slot := range slots {
		items = append(items, TimeSlotItem{
			ID:        slot.ID,
			Date:      slot.Date.Format(model.DateLayout),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"timeslots": items})
}

// GenerateTimeSlots godoc
// @Summary Generate weekly time slots for a consultant
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateSlotsRequest true "Generation parameters"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/timeslots/generate [post]
func (h *BookingHandler) GenerateTimeSlots(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req GenerateSlotsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	// Consultants may only generate their own schedule; admins may
	// target anyone or everyone.
	switch claims.Role {
	case model.RoleAdmin:
	case model.RoleConsultant:
		if req.ConsultantID == nil || *req.ConsultantID != claims.UserID {
			return domainError(errors.ErrForbidden)
		}
	default:
		return domainError(errors.ErrForbidden)
	}

	var startDate *time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.StartDate)
		if err != nil {
			return domainError(errors.ErrInvalidDate)
		}
		startDate = &parsed
	}

	created, err := h.slotService.Generate(c.Request().Context(), req.ConsultantID, req.NumWeeks, startDate)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "time slots generated successfully",
		"slots_created": created,
	})
}

// CreateBooking godoc
// @Summary Book an available time slot
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Slot to claim"
// @Success 201 {object} service.BookingConfirmation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /booking/createBooking [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing required field: time_slot_id",
			Code:  "VALIDATION_ERROR",
		})
	}

	confirmation, err := h.bookingService.CreateBooking(c.Request().Context(), claims.UserID, req.TimeSlotID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, confirmation)
}

// GetConsultantBookings godoc
// @Summary List a consultant's bookings
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Param consultant_id path int true "Consultant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /booking/consultants/{consultant_id}/getBookings [get]
func (h *BookingHandler) GetConsultantBookings(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	consultantID, err := pathID(c, "consultant_id")
	if err != nil {
		return err
	}

	if claims.Role != model.RoleAdmin && claims.UserID != consultantID {
		return domainError(errors.ErrForbidden)
	}

	rows, err := h.bookingService.ListConsultantBookings(c.Request().Context(), consultantID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": toBookingItems(rows)})
}

// GetMyBookings godoc
// @Summary List the calling learner's bookings
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /booking/my [get]
func (h *BookingHandler) GetMyBookings(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	rows, err := h.bookingService.ListUserBookings(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": toBookingItems(rows)})
}

// CancelBooking godoc
// @Summary Cancel an owned booking and free its slot
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/{booking_id}/cancel [post]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	if err := h.bookingService.CancelBooking(c.Request().Context(), claims.UserID, bookingID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "booking cancelled successfully"})
}

// UpdateBookingStatus godoc
// @Summary Override a booking's status (assigned consultant only)
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking_id path int true "Booking ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/{booking_id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "status is required",
			Code:  "VALIDATION_ERROR",
		})
	}

	if claims.Role != model.RoleConsultant {
		return domainError(errors.ErrForbidden)
	}

	newStatus := model.BookingStatus(req.Status)
	if err := h.bookingService.UpdateStatus(c.Request().Context(), claims.UserID, bookingID, newStatus); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "booking status updated successfully",
		"booking_id": bookingID,
		"status":     newStatus,
	})
}

// UpdateEmployment godoc
// @Summary Update a consultant's presence and shift
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param consultant_id path int true "Consultant ID"
// @Param request body UpdateEmploymentRequest true "Employment fields"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/consultants/{consultant_id}/employment [patch]
func (h *BookingHandler) UpdateEmployment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	consultantID, err := pathID(c, "consultant_id")
	if err != nil {
		return err
	}

	if claims.Role != model.RoleAdmin && claims.UserID != consultantID {
		return domainError(errors.ErrForbidden)
	}

	var req UpdateEmploymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.consultantService.UpdateEmployment(c.Request().Context(), consultantID, req.Presence, req.Shift); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "employment details updated successfully"})
}

// ProcessPayment godoc
// @Summary Pay for a pending booking (dummy gateway)
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProcessPaymentRequest true "Card details"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/payment/process [post]
func (h *BookingHandler) ProcessPayment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	receipt, err := h.bookingService.ProcessPayment(c.Request().Context(), claims.UserID, req.BookingID, service.CardDetails{
		Number:         req.CardNumber,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CVV:            req.CVV,
		CardholderName: req.CardholderName,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Payment processed successfully",
		"transaction_id": receipt.TransactionID,
		"amount":         receipt.Amount,
		"status":         receipt.Status,
	})
}

// PaymentStatus godoc
// @Summary Check whether an owned booking still requires payment
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /booking/payment/{booking_id}/status [get]
func (h *BookingHandler) PaymentStatus(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	status, requiresPayment, err := h.bookingService.PaymentStatus(c.Request().Context(), claims.UserID, bookingID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"booking_id":       bookingID,
		"status":           status,
		"requires_payment": requiresPayment,
	})
}
