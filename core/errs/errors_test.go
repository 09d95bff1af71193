package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"booktracker/core/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"NotFound", errs.NotFound("Could not find book with ID: %d", 4), http.StatusBadRequest, "Could not find book with ID: 4"},
		{"Ownership", errs.OwnershipViolation("book %d belongs to user %d", 1, 2), http.StatusBadRequest, "book 1 belongs to user 2"},
		{"Validation", errs.Validation("Invalid status code"), http.StatusBadRequest, "Invalid status code"},
		{"Unauthorized", errs.Unauthorized("unauthorized"), http.StatusUnauthorized, "unauthorized"},
		{"Internal", errs.Internal("failed to save book", fmt.Errorf("disk full")), http.StatusInternalServerError, "failed to save book"},
		{"Wrapped", fmt.Errorf("update: %w", errs.NotFound("gone")), http.StatusBadRequest, "gone"},
		{"Plain", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, errs.Status(tt.err))
			assert.Equal(t, tt.wantMsg, errs.Message(tt.err))
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", errs.NotFound("Could not find status with ID: %d", 9))

	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.False(t, errors.Is(err, errs.ErrValidation))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.Internal("failed to load tags", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load tags: connection reset", err.Error())
}
