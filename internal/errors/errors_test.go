package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/dara-analytics/dara/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.Error
		expected string
	}{
		{
			name:     "with subject",
			err:      errors.NewMissingColumnError("LoadCSV", "NOC"),
			expected: "LoadCSV data load failed on 'NOC': required column does not exist",
		},
		{
			name: "without subject",
			err: &errors.Error{
				Kind:    errors.KindInternal,
				Op:      "Render",
				Message: "encoder failed",
			},
			expected: "Render internal failed: encoder failed",
		},
		{
			name:     "with cause",
			err:      errors.NewDataLoadError("Load", "energy", stderrors.New("no such file")),
			expected: "Load data load failed on 'energy': dataset could not be loaded: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	notFound := errors.NewNotFoundError("CountryInfo", "Atlantis", map[string]string{"message": "x"})
	wrapped := fmt.Errorf("handler: %w", notFound)

	assert.ErrorIs(t, wrapped, errors.ErrNotFound)
	assert.NotErrorIs(t, wrapped, errors.ErrMissingParameter)
	assert.ErrorIs(t, errors.NewMissingParameterError("year", "Year parameter is required"), errors.ErrMissingParameter)
	assert.ErrorIs(t, errors.NewDataLoadError("Load", "netflix", nil), errors.ErrDataLoad)
	assert.False(t, notFound.Is(stderrors.New("different error")))
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying error")
	err := errors.NewDataLoadError("LoadParquet", "ipl", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestPayloadOf(t *testing.T) {
	payload := map[string]string{"error": "No data found for XYZ"}

	t.Run("not found carries payload", func(t *testing.T) {
		got, ok := errors.PayloadOf(fmt.Errorf("wrap: %w", errors.NewNotFoundError("CountryMedals", "XYZ", payload)))
		require.True(t, ok)
		assert.Equal(t, payload, got)
	})

	t.Run("other kinds carry none", func(t *testing.T) {
		_, ok := errors.PayloadOf(errors.NewMissingParameterError("year", "Year parameter is required"))
		assert.False(t, ok)
	})

	t.Run("foreign error", func(t *testing.T) {
		_, ok := errors.PayloadOf(stderrors.New("boom"))
		assert.False(t, ok)
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, errors.KindInvalidParameter, errors.KindOf(errors.NewInvalidParameterError("top_n", "bad")))
	assert.Equal(t, errors.KindInternal, errors.KindOf(stderrors.New("boom")))
	assert.Equal(t, "not found", errors.KindNotFound.String())
}
