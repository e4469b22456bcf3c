package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{util.ErrSessionSubmitted, http.StatusBadRequest},
		{util.ErrSessionInProgress, http.StatusBadRequest},
		{util.ErrBadAnswerLabel, http.StatusBadRequest},
		{util.ErrPermissionDenied, http.StatusForbidden},
		{util.ErrSessionNotFound, http.StatusNotFound},
		{util.ErrExamNotFound, http.StatusNotFound},
		{util.ErrAlreadyCompleted, http.StatusConflict},
		{util.ErrUsernameTaken, http.StatusConflict},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tt.err)
		if w.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}
