// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFoundError("x"), ErrNotFound)
	assert.ErrorIs(t, ValidationError("x"), ErrInvalidInput)
	assert.ErrorIs(t, PreconditionError("x"), ErrPreconditionFailed)

	cause := errors.New("disk full")
	assert.ErrorIs(t, InternalError(cause), cause)
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "Customer not found: not found", NotFoundError("Customer not found").Error())
	assert.Equal(t, "plain", NewAppError(CodeBadRequest, "plain", 400, nil).Error())
}

func TestAppError_As(t *testing.T) {
	var appErr *AppError
	assert.ErrorAs(t, fmt.Errorf("wrap: %w", ValidationError("bad")), &appErr)
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.NotErrorAs(t, ErrNotFound, &appErr)
}

func TestJitteredDuration(t *testing.T) {
	for range 20 {
		d := jitteredDuration(time.Hour)
		assert.GreaterOrEqual(t, d, time.Hour)
		assert.Less(t, d, time.Hour+time.Hour/7)
	}
	assert.Equal(t, time.Duration(3), jitteredDuration(3))
}
