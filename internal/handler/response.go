package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/model"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                  = http.StatusOK
	StatusNoContent           = http.StatusNoContent
	StatusSeeOther            = http.StatusSeeOther
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusNotFound            = http.StatusNotFound
	StatusUnprocessableEntity = http.StatusUnprocessableEntity
	StatusInternalServerError = http.StatusInternalServerError
)

// Common error messages
const (
	ErrInvalidInput       = "Invalid input format"
	ErrInvalidID          = "Invalid ID provided"
	ErrInternalServer     = "Internal server error"
	ErrInvalidQueryParams = "Invalid query parameters"
	ErrInvalidCredentials = "Invalid credentials."
	ErrInvoiceNotFound    = "Invoice not found."
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusBadRequest, message, details...)
}

// respondUnauthorized sends a 401 Unauthorized response
func respondUnauthorized(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusUnauthorized, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, StatusNotFound, message)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, StatusInternalServerError, message)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(StatusOK, data)
}

// respondRenderedPage sends a page that is already JSON encoded
func respondRenderedPage(c *gin.Context, page []byte) {
	c.Data(StatusOK, "application/json; charset=utf-8", page)
}

// respondOutcome writes the result of an invoice mutation: a 303 to the
// listing, 204 when the caller stays put, or the form state with a status
// matching the stage it stopped at.
func respondOutcome(c *gin.Context, outcome navigation.Outcome) {
	switch outcome.Stage {
	case navigation.StageRedirected:
		c.Redirect(StatusSeeOther, outcome.Location)
	case navigation.StageReturned:
		c.Status(StatusNoContent)
	case navigation.StageValidationFailed:
		c.JSON(StatusUnprocessableEntity, formState(outcome))
	default:
		if errors.Is(outcome.Err, repository.ErrInvoiceNotFound) {
			c.JSON(StatusNotFound, formState(outcome))
			return
		}
		c.JSON(StatusInternalServerError, formState(outcome))
	}
}

func formState(outcome navigation.Outcome) *model.FormState {
	if outcome.State == nil {
		return model.NewFormState(nil, "")
	}
	return outcome.State
}
