package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"eduhub/internal/auth"
	"eduhub/internal/config"
	apperrors "eduhub/internal/errors"
	"eduhub/internal/handler"
	"eduhub/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	recommendationHandler *handler.RecommendationHandler,
	consultationHandler *handler.ConsultationHandler,
	bookingHandler *handler.BookingHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Token accepted from the Authorization header or the access_token
	// cookie. Malformed tokens map to 422, absent ones to 401.
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:access_token",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractorErr *echojwt.TokenExtractionError
			switch {
			case errors.As(err, &extractorErr):
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing token",
					Code:  "MISSING_TOKEN",
				})
			case errors.Is(err, jwt.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "token has expired",
					Code:  "TOKEN_EXPIRED",
				})
			default:
				return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
					Error: "invalid token",
					Code:  "INVALID_TOKEN",
				})
			}
		},
	})

	// Public auth routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register/:user_type", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/protected", authHandler.Protected, jwtMiddleware)

	recommendations := e.Group("/recommendations", jwtMiddleware)
	recommendations.POST("/explore", recommendationHandler.Explore)

	consultation := e.Group("/consultation", jwtMiddleware)
	consultation.GET("/getConsultantDetails", consultationHandler.GetConsultantDetails)

	booking := e.Group("/booking", jwtMiddleware)
	booking.GET("/consultants/:consultant_id/timeslots", bookingHandler.GetConsultantTimeSlots)
	booking.POST("/timeslots/generate", bookingHandler.GenerateTimeSlots)
	booking.POST("/createBooking", bookingHandler.CreateBooking)
	booking.GET("/consultants/:consultant_id/getBookings", bookingHandler.GetConsultantBookings)
	booking.GET("/my", bookingHandler.GetMyBookings)
	booking.POST("/:booking_id/cancel", bookingHandler.CancelBooking)
	booking.PATCH("/:booking_id/status", bookingHandler.UpdateBookingStatus)
	booking.PATCH("/consultants/:consultant_id/employment", bookingHandler.UpdateEmployment)
	booking.POST("/payment/process", bookingHandler.ProcessPayment)
	booking.GET("/payment/:booking_id/status", bookingHandler.PaymentStatus)

	admin := e.Group("/admin", jwtMiddleware, adminOnly(userRepo))
	admin.GET("/getUsers", adminHandler.GetUsers)
	admin.GET("/getConsultants", adminHandler.GetConsultants)
	admin.GET("/getBookings", adminHandler.GetBookings)
	admin.GET("/getPrograms", adminHandler.GetPrograms)
	admin.POST("/generateTimeSlots", adminHandler.GenerateTimeSlots)
	admin.GET("/analytics/overview", adminHandler.AnalyticsOverview)
	admin.GET("/analytics/revenue", adminHandler.AnalyticsRevenue)
	admin.GET("/analytics/consultants", adminHandler.AnalyticsConsultants)
	admin.GET("/analytics/bookings", adminHandler.AnalyticsBookings)
	admin.GET("/analytics/users", adminHandler.AnalyticsUsers)
}

// adminOnly requires the token role to be admin and re-checks the users
// table for the identity, so revoked admins are rejected even with a
// live token.
func adminOnly(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing token",
					Code:  "MISSING_TOKEN",
				})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
					Error: "malformed token",
					Code:  "MALFORMED_TOKEN",
				})
			}

			isAdmin, err := userRepo.IsAdmin(c.Request().Context(), claims.UserID)
			if err != nil || !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "unauthorized access",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
