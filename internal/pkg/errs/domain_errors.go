package errs

import "errors"

// Error kinds shared by the use case layer. Transport maps each kind to a status code.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")

	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicateCode     = errors.New("duplicate code")
	ErrLimitExceeded     = errors.New("limit exceeded")
	ErrValidation        = errors.New("validation error")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// Entity specific not-found errors, all marked as ErrNotFound by the use cases.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

var (
	ErrProductUnavailable = errors.New("product is not available for booking")
	ErrConflict           = errors.New("conflict")
)
