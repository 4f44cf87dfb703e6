package httperr

import "errors"

// Business error codes surfaced by the booking widget.
const (
	CodeInvalidSelection = "invalid_selection"
	CodeSubmissionFailed = "submission_failed"
	CodeInProgress       = "booking_in_progress"
	CodeAlreadyComplete  = "booking_already_complete"
	CodeSessionNotFound  = "session_not_found"
	CodeSlotTaken        = "slot_taken"
)

type BusinessError struct {
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// Wrap attaches a business code to an underlying cause.
func Wrap(code string, err error) error {
	return BusinessError{Code: code, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" when there is none.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
