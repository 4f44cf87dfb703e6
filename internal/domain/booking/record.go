package booking

import (
	"context"
	"time"
)

// Record is the finished booking handed to the backend: the form merged
// with the selection at submission time.
type Record struct {
	Reference  string
	Name       string
	Phone      string
	Email      string
	Notes      string
	Date       time.Time
	TimeSlotID string
	Time       string
	Lang       string
}

type Receipt struct {
	Reference   string    `json:"reference"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter persists a booking and triggers its notifications. It must
// honour ctx cancellation.
type Submitter interface {
	Submit(ctx context.Context, rec Record) (*Receipt, error)
}

type SubmitterFunc func(ctx context.Context, rec Record) (*Receipt, error)

func (f SubmitterFunc) Submit(ctx context.Context, rec Record) (*Receipt, error) {
	return f(ctx, rec)
}

// Outcome is delivered once an asynchronous submission settles.
type Outcome struct {
	Receipt *Receipt
	Err     error
}
