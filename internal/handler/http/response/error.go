package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company ID is required")

	// Report domain errors
	case errors.Is(err, report.ErrMonthYearRequired):
		BadRequest(w, "Please select month and year", nil)
	case errors.Is(err, report.ErrCompanyRequired):
		BadRequest(w, "Company is required", nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
