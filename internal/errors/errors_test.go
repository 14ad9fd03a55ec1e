package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeFileNotFound, CategoryIO, SeverityError},
		{ErrCodeDocumentCorrupt, CategoryIO, SeverityFatal},
		{ErrCodeQueryEmpty, CategoryValidation, SeverityWarning},
		{ErrCodeInvalidMode, CategoryValidation, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
		{ErrCodePatternFailed, CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "message", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestSearchError_Error(t *testing.T) {
	err := New(ErrCodeQueryEmpty, "query is empty", nil)
	assert.Equal(t, "[ERR_403_QUERY_EMPTY] query is empty", err.Error())
}

func TestSearchError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := New(ErrCodeInternal, "wrapper", cause)

	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestSearchError_Is_MatchesByCode(t *testing.T) {
	a := New(ErrCodeQueryEmpty, "one message", nil)
	b := New(ErrCodeQueryEmpty, "another message", nil)
	c := New(ErrCodeInvalidMode, "different code", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestSearchError_As(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrCodeInvalidQuery, "bad query", nil))

	var se *SearchError
	require.True(t, stderrors.As(wrapped, &se))
	assert.Equal(t, ErrCodeInvalidQuery, se.Code)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))

	cause := stderrors.New("disk exploded")
	err := Wrap(ErrCodeFileNotFound, cause)
	require.NotNil(t, err)
	assert.Equal(t, "disk exploded", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeInvalidMode, "unknown mode", nil).
		WithDetail("mode", "telepathic").
		WithSuggestion("use intra-word")

	assert.Equal(t, "telepathic", err.Details["mode"])
	assert.Equal(t, "use intra-word", err.Suggestion)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, ErrCodeConfigInvalid, ConfigError("m", nil).Code)
	assert.Equal(t, ErrCodeFileNotFound, IOError("m", nil).Code)
	assert.Equal(t, ErrCodeInvalidInput, ValidationError("m", nil).Code)
	assert.Equal(t, ErrCodeInternal, InternalError("m", nil).Code)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(stderrors.New("plain")))
	assert.False(t, IsFatal(New(ErrCodeQueryEmpty, "m", nil)))
	assert.True(t, IsFatal(New(ErrCodeDocumentCorrupt, "m", nil)))
}

func TestGetCodeAndCategory(t *testing.T) {
	err := New(ErrCodeSearchFailed, "m", nil)
	assert.Equal(t, ErrCodeSearchFailed, GetCode(err))
	assert.Equal(t, CategoryInternal, GetCategory(err))

	assert.Equal(t, "", GetCode(stderrors.New("plain")))
	assert.Equal(t, Category(""), GetCategory(stderrors.New("plain")))
}
