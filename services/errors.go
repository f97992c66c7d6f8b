package services

import "errors"

var (
	// ErrValidation marks malformed or missing input; wrap it with field
	// detail, e.g. fmt.Errorf("%w: password too short", ErrValidation).
	ErrValidation = errors.New("invalid input")

	ErrUserNotFound  = errors.New("user not found")
	ErrEntryNotFound = errors.New("food entry not found")
	ErrFoodNotFound  = errors.New("food not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrOtpExpired  = errors.New("otp expired")
	ErrOtpMismatch = errors.New("invalid otp")

	// ErrUpstreamUnavailable covers food-database and mail-delivery failures;
	// the caller may retry the whole operation, the service never does.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
