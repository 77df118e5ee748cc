package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error code wins", New(http.StatusNotFound, "task not found", nil), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("claim: %w", New(http.StatusBadRequest, "expired", nil)), http.StatusBadRequest},
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"unauthorized sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"bad request sentinel", fmt.Errorf("x: %w", ErrBadRequest), http.StatusBadRequest},
		{"rate limit sentinel", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}
