package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindUnauthorized, KindForbidden:
		return "AuthError"
	default:
		return "UnexpectedError"
	}
}

// Status maps an error kind to its HTTP status code.
func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, fields ...string) error {
	if len(fields) > 0 {
		message = fmt.Sprintf("%s: %s", message, strings.Join(fields, ", "))
	}
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func NewNotFoundError(entity string) error {
	return &AppError{Kind: KindNotFound, Message: entity + " not found"}
}

func NewConflictError(format string, args ...interface{}) error {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewUnexpectedError(err error) error {
	return &AppError{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// KindOf reports the kind of err; errors that are not AppErrors are unexpected.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// NotFoundOr turns gorm.ErrRecordNotFound into a NotFoundError for entity and passes other errors through.
func NotFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(entity)
	}
	return err
}

// BindingError converts a gin binding failure into a ValidationError naming the offending fields.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, lowerFirst(fe.Field()))
		}
		return NewValidationError("missing or invalid fields", fields...)
	}
	return &AppError{Kind: KindValidation, Message: "malformed request body", Err: err}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials")
	ErrEmailRegistered    = NewConflictError("email already registered")
	ErrInvalidFileType    = NewValidationError("unsupported file type")
	ErrInvalidVideoExt    = NewValidationError("unsupported video format")
)
