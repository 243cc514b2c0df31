package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"eduhub/internal/errors"
	"eduhub/internal/model"
	"eduhub/internal/service"
)

// AdminHandler handles admin listings and analytics dashboards.
type AdminHandler struct {
	userService      service.ConsultantService
	bookingService   service.BookingService
	slotService      service.SlotService
	analyticsService service.AnalyticsService
	programService   service.ProgramService
	learnerService   service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	consultantService service.ConsultantService,
	bookingService service.BookingService,
	slotService service.SlotService,
	analyticsService service.AnalyticsService,
	programService service.ProgramService,
	learnerService service.UserService,
) *AdminHandler {
	return &AdminHandler{
		userService:      consultantService,
		bookingService:   bookingService,
		slotService:      slotService,
		analyticsService: analyticsService,
		programService:   programService,
		learnerService:   learnerService,
	}
}

// GetUsers godoc
// @Summary List all learners
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/getUsers [get]
func (h *AdminHandler) GetUsers(c echo.Context) error {
	learners, err := h.learnerService.ListLearners(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": learners})
}

// GetConsultants godoc
// @Summary List all consultants
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/getConsultants [get]
func (h *AdminHandler) GetConsultants(c echo.Context) error {
	consultants, err := h.userService.ListConsultants(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"consultants": consultants})
}

// GetBookings godoc
// @Summary List all bookings with learner and slot details
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/getBookings [get]
func (h *AdminHandler) GetBookings(c echo.Context) error {
	rows, err := h.bookingService.ListAllBookings(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": toBookingItems(rows)})
}

// GetPrograms godoc
// @Summary List all programs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/getPrograms [get]
func (h *AdminHandler) GetPrograms(c echo.Context) error {
	programs, err := h.programService.ListPrograms(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"programs": programs})
}

// GenerateTimeSlots godoc
// @Summary Generate time slots for one or all consultants
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateSlotsRequest true "Generation parameters"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/generateTimeSlots [post]
func (h *AdminHandler) GenerateTimeSlots(c echo.Context) error {
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

// AnalyticsOverview godoc
// @Summary Admin dashboard headline metrics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics/overview [get]
func (h *AdminHandler) AnalyticsOverview(c echo.Context) error {
	overview, err := h.analyticsService.Overview(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"overview": overview})
}

// AnalyticsRevenue godoc
// @Summary Monthly confirmed-booking revenue trend
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics/revenue [get]
func (h *AdminHandler) AnalyticsRevenue(c echo.Context) error {
	trend, err := h.analyticsService.RevenueTrend(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"revenue_trend": trend})
}

// AnalyticsConsultants godoc
// @Summary Consultant ranking and slot utilization
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics/consultants [get]
func (h *AdminHandler) AnalyticsConsultants(c echo.Context) error {
	analytics, err := h.analyticsService.ConsultantAnalytics(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"consultant_analytics": analytics})
}

// AnalyticsBookings godoc
// @Summary Booking trends and popular time slots
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics/bookings [get]
func (h *AdminHandler) AnalyticsBookings(c echo.Context) error {
	analytics, err := h.analyticsService.BookingAnalytics(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"booking_analytics": analytics})
}

// AnalyticsUsers godoc
// @Summary Learner registration trends and demographics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics/users [get]
func (h *AdminHandler) AnalyticsUsers(c echo.Context) error {
	analytics, err := h.analyticsService.UserAnalytics(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user_analytics": analytics})
}
