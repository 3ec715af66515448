// Common helper types for HTTP handlers.

package handlers

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/aquaboard/aquaboard/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps application-level errors to HTTP status codes. Internal
// details stay in the Detail field only for typed errors; unexpected errors
// are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	resp := ErrorResponse{
		Code:    string(code),
		Message: err.Error(),
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	}
	if code == errors.CodeUnknown {
		resp = ErrorResponse{
			Code:    string(errors.CodeInternal),
			Message: "internal server error",
		}
	}
	c.AbortWithStatusJSON(errors.HTTPStatus(code), resp)
}

// invalidBody wraps a JSON binding failure as a typed parameter error.
func invalidBody(err error) error {
	return errors.Wrap(err, errors.CodeInvalidParam, "invalid request body")
}
