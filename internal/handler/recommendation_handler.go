package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"eduhub/internal/errors"
	"eduhub/internal/service"
)

// RecommendationHandler handles program recommendation endpoints.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// ExploreRequest represents recommendation criteria. AreasOfInterest
// accepts either a string list or a comma-separated string.
type ExploreRequest struct {
	AreasOfInterest interface{} `json:"areas_of_interest"`
	DegreeLevel     string      `json:"degree_level"`
	Mode            string      `json:"mode"`
	Limit           int         `json:"limit"`
}

// ExploreResponse represents a recommendation result set.
type ExploreResponse struct {
	Count           int                      `json:"count"`
	Criteria        ExploreCriteria          `json:"criteria"`
	Recommendations []service.Recommendation `json:"recommendations"`
	UserInfo        map[string]interface{}   `json:"user_info"`
}

// ExploreCriteria echoes the request criteria back to the caller.
type ExploreCriteria struct {
	AreasOfInterest interface{} `json:"areas_of_interest"`
	DegreeLevel     string      `json:"degree_level"`
	Mode            string      `json:"mode"`
}

// Explore godoc
// @Summary Explore program recommendations
// @Tags recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExploreRequest true "Recommendation criteria"
// @Success 200 {object} ExploreResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /recommendations/explore [post]
func (h *RecommendationHandler) Explore(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ExploreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	recommendations, err := h.recommendationService.Recommend(
		c.Request().Context(),
		req.AreasOfInterest,
		req.DegreeLevel,
		req.Mode,
		req.Limit,
	)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ExploreResponse{
		Count: len(recommendations),
		Criteria: ExploreCriteria{
			AreasOfInterest: req.AreasOfInterest,
			DegreeLevel:     req.DegreeLevel,
			Mode:            req.Mode,
		},
		Recommendations: recommendations,
		UserInfo: map[string]interface{}{
			"id":   claims.UserID,
			"type": claims.Role,
		},
	})
}
