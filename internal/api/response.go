// ABOUTME: JSON error responses and mapping of service errors to HTTP status codes.
// ABOUTME: Validation failures carry per-field detail alongside the message.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/storage"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *coach.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorBody{Message: "Invalid request", Errors: fieldErrors(verr.Fields)})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorBody{Message: notFoundMessage(err)})
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorBody{Message: "Internal server error"})
	}
}

// respondBindError reports a body or query that failed to decode or validate.
func (h *Handler) respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorBody{
			Message: "Invalid request",
			Errors:  fieldErrors(coach.FromValidationErrors(verrs).Fields),
		})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, ErrorBody{
			Message: "Invalid request",
			Errors:  []FieldError{{Field: typeErr.Field, Message: "has the wrong type"}},
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorBody{Message: "Invalid request body"})
}

func fieldErrors(fields map[string]string) []FieldError {
	out := make([]FieldError, 0, len(fields))
	for f, msg := range fields {
		out = append(out, FieldError{Field: f, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// notFoundMessage turns "exercise <id>: not found" into "exercise <id> not found".
func notFoundMessage(err error) string {
	subject := strings.TrimSuffix(err.Error(), ": "+storage.ErrNotFound.Error())
	if subject == storage.ErrNotFound.Error() {
		return "Not found"
	}
	return subject + " not found"
}
