package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/service"
	"github.com/taskly/taskly-api/internal/service/auth"
	"github.com/taskly/taskly-api/internal/store"
)

// Client-facing messages.
const (
	msgUnexpected        = "Something went wrong, try again later"
	msgInvalidRequest    = "Invalid request format"
	msgInvalidCreds      = "Invalid Credentials"
	msgAuthInvalid       = "Authentication invalid"
	msgEmailInUse        = "Email already in use"
	msgMissingRegister   = "Please provide email, name and password"
	msgMissingLogin      = "Please provide email and password"
	msgNoTasksForUser    = "No Tasks was found for this user"
	msgTaskDeleted       = "Task Deleted successfully"
	msgRouteDoesNotExist = "Route does not exist"
)

// MapErrorToStatusCode maps service, store and auth errors to HTTP status codes.
// Anything unrecognised is a 500.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidTaskInput),
		errors.Is(err, service.ErrMissingRegistrationFields),
		errors.Is(err, service.ErrMissingLoginFields),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to the client for
// err. It never includes the raw error text of unexpected failures.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var (
		reqErr         *service.RequestError
		domainErr      *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.Message

	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCreds

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return msgAuthInvalid

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrMissingRegistrationFields):
		return msgMissingRegister

	case errors.Is(err, service.ErrMissingLoginFields):
		return msgMissingLogin

	case errors.Is(err, store.ErrEmailExists):
		return msgEmailInUse

	case errors.As(err, &domainErr):
		if domainErr.Field == "" {
			return domainErr.Message
		}
		return fmt.Sprintf("%s %s", domainErr.Field, domainErr.Message)

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, shared.ErrInvalidJSON):
		return msgInvalidRequest

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns validator failures into a short message that
// names the offending JSON field without echoing its value.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. A non-empty message
// replaces the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}
