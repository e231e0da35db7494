package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

func record(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NewNotFound("booking 1 not found"), http.StatusNotFound},
		{"bad request", apperrors.NewBadRequest("start must be before end"), http.StatusBadRequest},
		{"comment not allowed", apperrors.NewCommentNotAllowed("no completed booking"), http.StatusBadRequest},
		{"forbidden", apperrors.NewForbidden("only owner can approve bookings"), http.StatusForbidden},
		{"conflict", apperrors.NewConflict("email taken"), http.StatusConflict},
		{"access denied", apperrors.NewAccessDenied("access denied"), http.StatusInternalServerError},
		{"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestError_UnknownErrorIncludesDetails(t *testing.T) {
	w := record(errors.New("driver: bad connection"))

	assert.Contains(t, w.Body.String(), `"details"`)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestError_TypedErrorBodyIsMessageOnly(t *testing.T) {
	w := record(apperrors.NewNotFound("user 7 not found"))

	assert.JSONEq(t, `{"error":"user 7 not found"}`, w.Body.String())
}
