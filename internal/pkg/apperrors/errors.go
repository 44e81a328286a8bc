package apperrors

import "errors"

// Common errors
var (
	// Authentication errors. Identifier-not-found and password-mismatch are
	// deliberately collapsed into ErrInvalidCredentials so callers cannot
	// tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrRollNumberExists  = errors.New("roll number already exists")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidRole       = errors.New("invalid role")
	ErrMissingIdentifier = errors.New("missing role identifier")
)

// Note errors
var (
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteNotAccessible means the note exists but its moderation status
	// forbids this viewer. Distinct from ErrNoteNotFound.
	ErrNoteNotAccessible = errors.New("note not accessible")
)

// Attachment errors, all part of the validation family.
var (
	ErrAttachmentNotPDF   = errors.New("attachment is not a PDF")
	ErrAttachmentTooLarge = errors.New("attachment exceeds the size limit")
	ErrAttachmentMissing  = errors.New("attachment is required")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError wraps ErrPermissionDenied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// IsValidation reports whether err belongs to the validation family
// (bad attachment type/size, missing required field).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrAttachmentNotPDF) ||
		errors.Is(err, ErrAttachmentTooLarge) ||
		errors.Is(err, ErrAttachmentMissing)
}
