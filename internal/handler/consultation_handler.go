package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"eduhub/internal/service"
)

// ConsultationHandler handles the consultant directory endpoint.
type ConsultationHandler struct {
	consultantService service.ConsultantService
}

// NewConsultationHandler creates a new consultation handler.
func NewConsultationHandler(consultantService service.ConsultantService) *ConsultationHandler {
	return &ConsultationHandler{consultantService: consultantService}
}

// GetConsultantDetails godoc
// @Summary List all consultants with profile details
// @Tags consultation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /consultation/getConsultantDetails [get]
func (h *ConsultationHandler) GetConsultantDetails(c echo.Context) error {
	consultants, err := h.consultantService.ListConsultants(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"consultants": consultants})
}
