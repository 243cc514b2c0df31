package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailExists is returned when a registration email is already taken by any role.
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidUserType is returned for an unknown registration role.
	ErrInvalidUserType = errors.New("invalid user type")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when the identity behind a token no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrConsultantNotFound is returned when a consultant id resolves to nothing.
	ErrConsultantNotFound = errors.New("consultant not found")
	// ErrSlotNotFound is returned when a time slot does not exist.
	ErrSlotNotFound = errors.New("time slot not found")
	// ErrSlotUnavailable is returned when a slot has already been claimed.
	ErrSlotUnavailable = errors.New("this time slot is no longer available")
	// ErrBookingNotFound is returned when a booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotOwner is returned when the caller does not own the booking.
	ErrNotOwner = errors.New("you are not authorized for this booking")
	// ErrForbidden is returned on any other role/owner mismatch.
	ErrForbidden = errors.New("unauthorized access")
	// ErrBookingNotPending is returned when payment is attempted on a non-pending booking.
	ErrBookingNotPending = errors.New("this booking is not pending payment")
	// ErrInvalidStatus is returned for an unknown booking status value.
	ErrInvalidStatus = errors.New("invalid status, must be Confirmed, Cancelled, or Pending")
	// ErrInvalidDate is returned for a malformed date string.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// PaymentError is a dummy-gateway decline with a caller-facing reason.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string { return e.Reason }

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var payErr *PaymentError
	if errors.As(err, &payErr) {
		return NewHTTPError(http.StatusBadRequest, payErr.Reason, "PAYMENT_DECLINED")
	}

	switch {
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrInvalidUserType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_USER_TYPE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrConsultantNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CONSULTANT_NOT_FOUND")
	case errors.Is(err, ErrSlotNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SLOT_NOT_FOUND")
	case errors.Is(err, ErrSlotUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLOT_UNAVAILABLE")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrBookingNotPending):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOKING_NOT_PENDING")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
