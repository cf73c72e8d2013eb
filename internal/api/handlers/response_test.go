package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-forge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writeAndDecode(t *testing.T, err error, debug bool) (int, common.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(c, err, debug)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", common.NewValidationError("Please provide ingredients"), 400, "INVALID_REQUEST", "Please provide ingredients"},
		{"not found", common.ErrNotFound.Wrap(errors.New("missing")), 404, "NOT_FOUND", "Recipe not found"},
		{"wrapped custom", fmt.Errorf("outer: %w", common.ErrGenerateFailed.Wrap(errors.New("db"))), 500, "INTERNAL_ERROR", "Failed to generate recipe"},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), 504, "GATEWAY_TIMEOUT", "Request timeout"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := writeAndDecode(t, tt.err, false)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Empty(t, resp.Details)
		})
	}
}

func TestWriteError_DetailsOnlyInDebug(t *testing.T) {
	err := common.ErrGenerateFailed.Wrap(errors.New("disk full"))

	_, resp := writeAndDecode(t, err, true)
	assert.Contains(t, resp.Details, "disk full")

	_, resp = writeAndDecode(t, err, false)
	assert.Empty(t, resp.Details)
}
