package booking

import (
	"fmt"

	"github.com/BruksfildServices01/booking-widget/internal/httperr"
)

var (
	ErrInProgress      = httperr.ErrBusiness(httperr.CodeInProgress)
	ErrAlreadyComplete = httperr.ErrBusiness(httperr.CodeAlreadyComplete)

	// ErrSlotTaken is returned by a Repository when another booking already
	// holds the slot.
	ErrSlotTaken = httperr.ErrBusiness(httperr.CodeSlotTaken)
)

// SubmissionError describes a failed or timed out backend call. It is
// always returned wrapped in a submission_failed business error.
type SubmissionError struct {
	Err     error
	Timeout bool
}

func (e *SubmissionError) Error() string {
	if e.Timeout {
		return "booking: submission timed out: " + e.Err.Error()
	}
	return "booking: submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func invalidSelection(format string, args ...any) error {
	return httperr.Wrap(httperr.CodeInvalidSelection, fmt.Errorf(format, args...))
}

func submissionFailed(err error, timeout bool) error {
	return httperr.Wrap(httperr.CodeSubmissionFailed, &SubmissionError{Err: err, Timeout: timeout})
}
