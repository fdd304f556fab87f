package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrInvalidRequest", ErrInvalidRequest},
		{"ErrIngestionTimeout", ErrIngestionTimeout},
		{"ErrStageFailed", ErrStageFailed},
		{"ErrJobNotFound", ErrJobNotFound},
		{"ErrSourceUnavailable", ErrSourceUnavailable},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrStageFailed_Wrapping(t *testing.T) {
	err := fmt.Errorf("%w: pattern_analysis: %w", ErrStageFailed, errors.New("boom"))

	assert.True(t, errors.Is(err, ErrStageFailed))
	assert.False(t, errors.Is(err, ErrIngestionTimeout))
	assert.Contains(t, err.Error(), "boom")
}
