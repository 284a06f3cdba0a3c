//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// AssertSuccessResponse checks the status and success flag, then decodes the
// envelope's data into target when given.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	var env envelope
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String())) {
		return
	}
	assert.True(t, env.Success, w.Body.String())

	if target != nil {
		assert.NoError(t, json.Unmarshal(env.Data, target), fmt.Sprintf("Failed to decode data: %s", string(env.Data)))
	}
}

// AssertErrorResponse checks the status, the failure flag and, when given, the
// error code carried in data.code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var errorResponse struct {
		Success bool `json:"success"`
		Data    struct {
			Code string `json:"code"`
		} `json:"data"`
		Message string `json:"message"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))
	assert.False(t, errorResponse.Success)

	if expectedCode != "" {
		assert.Equal(t, expectedCode, errorResponse.Data.Code, "Response error code mismatch")
	}
}
