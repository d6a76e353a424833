package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/codexreader/codex-core/internal/errors"
)

type sample struct {
	FontSize int     `json:"font_size" validate:"omitempty,min=14,max=28"`
	Zoom     float64 `json:"zoom" validate:"omitempty,gte=0.5,lte=3"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{FontSize: 18, Zoom: 1}))
	assert.NoError(t, v.Validate(sample{}), "omitempty skips zero values")
}

func TestValidate_FailsWithJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(sample{FontSize: 99, Zoom: 9})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	var domainErr *domainerrors.Error
	assert.True(t, domainerrors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "must be at most 28", details["font_size"])
	assert.Equal(t, "must be 3 or less", details["zoom"])
}
