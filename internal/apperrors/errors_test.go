package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapsSentinels(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("bad date"), ErrValidation)
	assert.ErrorIs(t, NewNotFoundError("missing"), ErrNotFound)

	cause := errors.New("disk full")
	perr := NewPersistenceError("write partition", cause)
	assert.ErrorIs(t, perr, ErrPersistence)
	assert.ErrorIs(t, perr, cause)
	assert.Equal(t, http.StatusInternalServerError, perr.Code)

	rerr := NewRefreshError("provider returned 503", nil)
	assert.ErrorIs(t, rerr, ErrRefreshFailed)
	assert.Equal(t, http.StatusBadGateway, rerr.Code)
}

func TestAppErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("add transaction: %w", NewValidationError("amount must be non-negative"))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, err.Error(), "amount must be non-negative")
}
