package response

import (
	"errors"
	"net/http"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, jwt.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrIllegalTransition):
		Conflict(w, "Action not allowed in the current attendance state")
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance record not found")

	// Correction domain errors
	case errors.Is(err, correction.ErrDuplicatePendingRequest):
		Conflict(w, "A correction request is already pending for this day")
	case errors.Is(err, correction.ErrStaleRequest):
		Conflict(w, "Correction request already handled or does not exist")
	case errors.Is(err, correction.ErrRequestNotFound):
		NotFound(w, "Correction request not found")

	// Infrastructure
	case errors.Is(err, database.ErrOperationFailed):
		ServiceUnavailable(w, "Operation failed, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
