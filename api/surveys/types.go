package surveys

import (
	"fmt"
	"strings"

	"github.com/Adedunmol/questino/api/custom_errors"
)

const (
	TypeText    = "text"
	TypeMCQ     = "mcq"
	TypeScale   = "scale"
	TypeSlider  = "slider"
	TypeSection = "section"
)

// NormalizeType maps the question type aliases accepted from clients onto the
// stored question types. Unknown values become text.
func NormalizeType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open", "text":
		return TypeText
	case "scale":
		return TypeScale
	case "slider":
		return TypeSlider
	case "section":
		return TypeSection
	case "mcq", "multiple", "single", "yesno", "dichotomous":
		return TypeMCQ
	default:
		return TypeText
	}
}

// defaultBounds returns the scale bounds used when a scale or slider question
// is created without them.
func defaultBounds(questionType string) (int32, int32) {
	if questionType == TypeSlider {
		return 0, 10
	}
	return 1, 5
}

const (
	// MaxScalePoints caps how many integer points a scale question may span.
	MaxScalePoints = 101
	// ScaleBoundLimit bounds scale_min and scale_max of any question.
	ScaleBoundLimit = 10000
)

// CheckScaleBounds rejects a scale whose range holds more than MaxScalePoints
// points. Sliders are binned into a fixed number of buckets and only need the
// bound limits enforced on the request body.
func CheckScaleBounds(questionType string, low, high int) error {
	if questionType != TypeScale {
		return nil
	}
	if high < low {
		low, high = high, low
	}
	if high-low+1 > MaxScalePoints {
		return fmt.Errorf("%w: %d..%d spans more than %d points", custom_errors.ErrInvalidScale, low, high, MaxScalePoints)
	}
	return nil
}
