// Package booking holds the state of one visitor's way through the widget:
// the chosen date and slot, the contact form, the step cursor and the
// confirmation and submission flags.
package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
)

const DefaultSubmitTimeout = 10 * time.Second

type Option func(*Flow)

func WithTimeout(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithLang records the widget language on submitted bookings. It has no
// effect on scheduling.
func WithLang(lang string) Option {
	return func(f *Flow) {
		f.lang = lang
	}
}

// Flow is owned by a single booking session. Commands are serialised by an
// internal mutex so an in-flight submission can be observed through State.
type Flow struct {
	mu sync.Mutex

	days      []availability.DayAvailability
	submitter Submitter
	timeout   time.Duration
	logger    *zap.Logger
	lang      string

	reference string

	selectedDate     *time.Time
	selectedTimeSlot *string
	formData         FormData
	step             int

	confirmationOpen bool
	complete         bool
	loading          bool

	receipt *Receipt
	lastErr error
}

// New starts a flow over a generated calendar. The flow keeps its own copy
// of days.
func New(days []availability.DayAvailability, submitter Submitter, opts ...Option) *Flow {
	f := &Flow{
		days:      availability.CloneDays(days),
		submitter: submitter,
		timeout:   DefaultSubmitTimeout,
		logger:    zap.NewNop(),
		reference: uuid.NewString(),
		step:      StepSelectDateTime,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := State{
		AvailableDays:      availability.CloneDays(f.days),
		FormData:           f.formData.clone(),
		Step:               f.step,
		IsConfirmationOpen: f.confirmationOpen,
		IsBookingComplete:  f.complete,
		IsLoading:          f.loading,
	}
	if f.selectedDate != nil {
		d := *f.selectedDate
		st.SelectedDate = &d
	}
	if f.selectedTimeSlot != nil {
		s := *f.selectedTimeSlot
		st.SelectedTimeSlot = &s
	}
	if f.receipt != nil {
		r := *f.receipt
		st.Receipt = &r
	}
	if f.lastErr != nil {
		st.LastError = f.lastErr.Error()
	}
	return st
}

// Days returns a copy of the flow's calendar.
func (f *Flow) Days() []availability.DayAvailability {
	return availability.CloneDays(f.days)
}

// SetSelectedDate selects a bookable day of the calendar, or clears the
// selection when date is nil. A selected slot that does not belong to the
// new day is dropped. Refused while a submission is in flight.
func (f *Flow) SetSelectedDate(date *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return ErrInProgress
	}
	return f.selectDate(date)
}

// SetSelectedTimeSlot selects an open slot of the selected day, or clears
// the slot when id is nil. Refused while a submission is in flight.
func (f *Flow) SetSelectedTimeSlot(id *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return ErrInProgress
	}
	return f.selectTimeSlot(id)
}

// UpdateFormData merges p into the form. Date and TimeSlot go through the
// same checks as the selection setters; on error nothing is changed. The
// form is frozen while a submission is in flight.
func (f *Flow) UpdateFormData(p FormPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loading {
		return ErrInProgress
	}

	prevDate, prevSlot, prevForm := f.selectedDate, f.selectedTimeSlot, f.formData

	if p.Date != nil {
		if err := f.selectDate(p.Date); err != nil {
			return err
		}
	}
	if p.TimeSlot != nil {
		if err := f.selectTimeSlot(p.TimeSlot); err != nil {
			f.selectedDate, f.selectedTimeSlot, f.formData = prevDate, prevSlot, prevForm
			return err
		}
	}

	p.apply(&f.formData)
	return nil
}

func (f *Flow) GoToNextStep() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step < StepReview {
		f.step++
	}
}

func (f *Flow) GoToPreviousStep() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > StepSelectDateTime {
		f.step--
	}
}

func (f *Flow) OpenConfirmation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmationOpen = true
}

func (f *Flow) CloseConfirmation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmationOpen = false
}

// Reset returns the flow to step one with an empty form and no selection.
// The calendar is kept. The confirmation gate is closed as well; a reset
// while a submission is in flight is refused.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loading {
		return ErrInProgress
	}

	f.selectedDate = nil
	f.selectedTimeSlot = nil
	f.formData = FormData{}
	f.step = StepSelectDateTime
	f.complete = false
	f.confirmationOpen = false
	f.receipt = nil
	f.lastErr = nil
	f.reference = uuid.NewString()
	return nil
}

// Complete submits the booking and waits for the outcome.
func (f *Flow) Complete(ctx context.Context) (*Receipt, error) {
	done, err := f.StartComplete(ctx)
	if err != nil {
		return nil, err
	}
	out := <-done
	return out.Receipt, out.Err
}

// StartComplete marks the flow as loading and submits the booking in the
// background, bounded by the flow timeout. The returned channel yields
// exactly one Outcome. On failure the flow leaves the loading state and
// keeps the form, the selection and the confirmation gate so the visitor
// can retry.
func (f *Flow) StartComplete(ctx context.Context) (<-chan Outcome, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil, ErrInProgress
	}
	if f.complete {
		f.mu.Unlock()
		return nil, ErrAlreadyComplete
	}
	rec, err := f.record()
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.loading = true
	f.lastErr = nil
	f.mu.Unlock()

	f.logger.Info("booking submission started",
		zap.String("reference", rec.Reference),
		zap.String("slot_id", rec.TimeSlotID),
	)

	done := make(chan Outcome, 1)
	go func() {
		receipt, err := f.submit(ctx, rec)
		f.finish(rec, receipt, err)
		done <- Outcome{Receipt: receipt, Err: err}
		close(done)
	}()

	return done, nil
}

func (f *Flow) submit(ctx context.Context, rec Record) (*Receipt, error) {
	if f.submitter == nil {
		return nil, submissionFailed(errors.New("no submitter configured"), false)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	res := make(chan Outcome, 1)
	go func() {
		r, err := f.submitter.Submit(ctx, rec)
		res <- Outcome{Receipt: r, Err: err}
	}()

	select {
	case out := <-res:
		if out.Err != nil {
			return nil, submissionFailed(out.Err, errors.Is(out.Err, context.DeadlineExceeded))
		}
		if out.Receipt == nil {
			out.Receipt = &Receipt{Reference: rec.Reference, SubmittedAt: time.Now()}
		}
		return out.Receipt, nil
	case <-ctx.Done():
		return nil, submissionFailed(ctx.Err(), errors.Is(ctx.Err(), context.DeadlineExceeded))
	}
}

func (f *Flow) finish(rec Record, receipt *Receipt, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.loading = false
		f.lastErr = err
		f.logger.Warn("booking submission failed",
			zap.String("reference", rec.Reference),
			zap.Error(err),
		)
		return
	}

	f.complete = true
	f.confirmationOpen = false
	f.loading = false
	f.receipt = receipt
	f.logger.Info("booking completed",
		zap.String("reference", receipt.Reference),
		zap.String("slot_id", rec.TimeSlotID),
	)
}

// record merges the form with the current selection. Callers hold f.mu.
func (f *Flow) record() (Record, error) {
	if f.selectedDate == nil || f.selectedTimeSlot == nil {
		return Record{}, invalidSelection("date and time slot must be selected")
	}

	day, ok := availability.FindDay(f.days, *f.selectedDate)
	if !ok {
		return Record{}, invalidSelection("date %s is not in the calendar", f.selectedDate.Format(availability.DateLayout))
	}
	slot, ok := availability.FindSlot(day, *f.selectedTimeSlot)
	if !ok || !slot.Available {
		return Record{}, invalidSelection("time slot %s is not available", *f.selectedTimeSlot)
	}

	return Record{
		Reference:  f.reference,
		Name:       f.formData.Name,
		Phone:      f.formData.Phone,
		Email:      f.formData.Email,
		Notes:      f.formData.Notes,
		Date:       day.Date,
		TimeSlotID: slot.ID,
		Time:       slot.Time,
		Lang:       f.lang,
	}, nil
}

func (f *Flow) selectDate(date *time.Time) error {
	if date == nil {
		f.selectedDate = nil
		f.selectedTimeSlot = nil
		f.formData.Date = nil
		f.formData.TimeSlot = nil
		return nil
	}

	day, ok := availability.FindDay(f.days, *date)
	if !ok {
		return invalidSelection("date %s is not in the calendar", date.Format(availability.DateLayout))
	}
	if !day.Available {
		return invalidSelection("date %s is not bookable", date.Format(availability.DateLayout))
	}

	d := day.Date
	f.selectedDate = &d
	dd := d
	f.formData.Date = &dd

	if f.selectedTimeSlot != nil {
		if _, ok := availability.FindSlot(day, *f.selectedTimeSlot); !ok {
			f.selectedTimeSlot = nil
			f.formData.TimeSlot = nil
		}
	}
	return nil
}

func (f *Flow) selectTimeSlot(id *string) error {
	if id == nil {
		f.selectedTimeSlot = nil
		f.formData.TimeSlot = nil
		return nil
	}
	if f.selectedDate == nil {
		return invalidSelection("select a date before a time slot")
	}

	day, _ := availability.FindDay(f.days, *f.selectedDate)
	slot, ok := availability.FindSlot(day, *id)
	if !ok {
		return invalidSelection("time slot %s does not belong to %s", *id, f.selectedDate.Format(availability.DateLayout))
	}
	if !slot.Available {
		return invalidSelection("time slot %s is not available", *id)
	}

	s := slot.ID
	f.selectedTimeSlot = &s
	ss := s
	f.formData.TimeSlot = &ss
	return nil
}
