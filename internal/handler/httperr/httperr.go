package httperr

import (
	"log/slog"
	"net/http"

	"tour-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the error form of the uniform envelope.
type Response struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Detail tells clients which kind of failure occurred when statuses collide.
type Detail struct {
	Code string `json:"code"`
}

const InternalMessage = "Internal server error"

type kind struct {
	err    error
	status int
	code   string
}

// Order matters: the first matching kind wins.
var kinds = []kind{
	{errs.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{errs.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{errs.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{errs.ErrConflict, http.StatusConflict, "CONFLICT"},
	{errs.ErrInvalidProduct, http.StatusBadRequest, "INVALID_PRODUCT"},
	{errs.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION"},
	{errs.ErrDuplicateCode, http.StatusBadRequest, "DUPLICATE_CODE"},
	{errs.ErrLimitExceeded, http.StatusBadRequest, "LIMIT_EXCEEDED"},
	{errs.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// Classify maps an error kind to its status and code. Unknown errors are 500.
func Classify(err error) (int, string) {
	for _, k := range kinds {
		if errs.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Success: false, Message: msg, Data: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort classifies err and aborts with the matching envelope. Internal errors
// are logged with their stack and answered with a generic message.
func Abort(c *gin.Context, err error) {
	status, code := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("unhandled error",
			"path", c.Request.URL.Path,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12))
		msg = InternalMessage
	}
	AbortWithError(c, status, err, msg, Detail{Code: code})
}

// BadRequest reports malformed input before any use case runs.
func BadRequest(c *gin.Context, err error) {
	AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), err.Error(), Detail{Code: "VALIDATION_ERROR"})
}
