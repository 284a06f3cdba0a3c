//go:build unit

package httperr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	base := errs.New("boom")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", errs.Mark(base, errs.ErrUnauthenticated), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"forbidden", errs.Mark(base, errs.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"not found", errs.Mark(errs.ErrBookingNotFound, errs.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", errs.Mark(base, errs.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"invalid product", errs.Mark(base, errs.ErrInvalidProduct), http.StatusBadRequest, "INVALID_PRODUCT"},
		{"invalid transition", errs.Mark(base, errs.ErrInvalidTransition), http.StatusBadRequest, "INVALID_TRANSITION"},
		{"duplicate code", errs.Mark(base, errs.ErrDuplicateCode), http.StatusBadRequest, "DUPLICATE_CODE"},
		{"limit exceeded", errs.Mark(base, errs.ErrLimitExceeded), http.StatusBadRequest, "LIMIT_EXCEEDED"},
		{"validation", errs.Mark(base, errs.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"database", errs.Mark(base, errs.ErrDatabaseOperationFailed), http.StatusInternalServerError, "INTERNAL"},
		{"unknown", base, http.StatusInternalServerError, "INTERNAL"},
		{"first kind wins", errs.MarkAll(base, errs.ErrValidation, errs.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, code := Classify(c.err)
			assert.Equal(t, c.status, status)
			assert.Equal(t, c.code, code)
		})
	}
}

func TestAbort_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)

	Abort(c, errs.Mark(errs.New("connection reset by peer"), errs.ErrDatabaseOperationFailed))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    Detail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, InternalMessage, body.Message)
	assert.Equal(t, "INTERNAL", body.Data.Code)
}
