package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingParameter(t *testing.T) {
	err := MissingParameter("School ID is required")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "MISSING_PARAMETER", err.Code)
	assert.Equal(t, "School ID is required", err.Error())
	assert.Equal(t, "missing required parameter", ErrMissingParameter.Message)
}

func TestInvalidParameter(t *testing.T) {
	cause := stdErrors.New(`unsupported export format "docx"`)
	err := InvalidParameter(cause, "Format must be csv, pdf or xlsx")

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "INVALID_PARAMETER", err.Code)
	assert.NotEqual(t, ErrMissingParameter.Code, err.Code)
	assert.Equal(t, "Format must be csv, pdf or xlsx", err.Message)
	assert.True(t, stdErrors.Is(err, cause))
}

func TestUnhandledKeepsCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Unhandled(cause, "Failed to fetch courses")

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Failed to fetch courses", err.Message)
	assert.True(t, stdErrors.Is(err, cause))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := MissingParameter("Survey ID is required")
	assert.Same(t, typed, FromError(typed))

	plain := FromError(stdErrors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, ErrInternal.Message, plain.Message)
}
