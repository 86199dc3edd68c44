package surveys_test

import (
	"net/http"
	"testing"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"":            surveys.TypeText,
		"open":        surveys.TypeText,
		"TEXT":        surveys.TypeText,
		"scale":       surveys.TypeScale,
		"slider":      surveys.TypeSlider,
		"section":     surveys.TypeSection,
		"mcq":         surveys.TypeMCQ,
		"multiple":    surveys.TypeMCQ,
		"single":      surveys.TypeMCQ,
		"yesno":       surveys.TypeMCQ,
		"dichotomous": surveys.TypeMCQ,
		"rating":      surveys.TypeText,
	}

	for raw, want := range cases {
		assert.Equal(t, want, surveys.NormalizeType(raw), raw)
	}
}

func TestDecodeOptions(t *testing.T) {
	assert.Equal(t, []string{"Yes", "No"}, surveys.DecodeOptions(`["Yes","No"]`))
	assert.Equal(t, []string{}, surveys.DecodeOptions(`not json`))
	assert.Equal(t, []string{}, surveys.DecodeOptions(""))
	assert.Equal(t, []string{"1", "2"}, surveys.DecodeOptions(`[1,2]`))
}

func TestCheckScaleBounds(t *testing.T) {
	assert.NoError(t, surveys.CheckScaleBounds(surveys.TypeScale, 1, 5))
	assert.NoError(t, surveys.CheckScaleBounds(surveys.TypeScale, 0, 100))
	assert.NoError(t, surveys.CheckScaleBounds(surveys.TypeScale, 5, 1))
	assert.NoError(t, surveys.CheckScaleBounds(surveys.TypeSlider, -10000, 10000))

	err := surveys.CheckScaleBounds(surveys.TypeScale, 0, 101)
	assert.ErrorIs(t, err, custom_errors.ErrInvalidScale)
	assert.Equal(t, http.StatusBadRequest, custom_errors.HTTPStatus(err))
}
