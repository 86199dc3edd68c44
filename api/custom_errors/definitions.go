package custom_errors

import (
	"errors"
	"net/http"
)

var (
	ErrConflict        = errors.New("record already exists")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrForbidden       = errors.New("you do not have access to this resource")
	ErrInternalServer  = errors.New("internal server error")
	ErrSurveyPrivate   = errors.New("This survey is private and not accessible.")
	ErrStatsPrivate    = errors.New("These stats are private.")
	ErrPublicStatsOff  = errors.New("Stats are not public for this survey")
	ErrAccountRequired = errors.New("this survey requires a signed in account")
	ErrAnalysisTimeout = errors.New("Timed out waiting for analysis")
	ErrMissingAnswers  = errors.New("required questions are unanswered")
	ErrInvalidScale    = errors.New("scale range is too wide")
)

// HTTPStatus maps a (possibly wrapped) error onto the response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAccountRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSurveyPrivate),
		errors.Is(err, ErrStatsPrivate), errors.Is(err, ErrPublicStatsOff):
		return http.StatusForbidden
	case errors.Is(err, ErrMissingAnswers), errors.Is(err, ErrInvalidScale):
		return http.StatusBadRequest
	case errors.Is(err, ErrAnalysisTimeout):
		return http.StatusAccepted
	default:
		return http.StatusInternalServerError
	}
}
