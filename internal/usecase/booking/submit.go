package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-widget/internal/audit"
	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/logging"
	"github.com/BruksfildServices01/booking-widget/internal/metrics"
	"github.com/BruksfildServices01/booking-widget/internal/models"
	"github.com/BruksfildServices01/booking-widget/internal/notify"
)

// CalendarInvalidator is told when a booking changes availability.
type CalendarInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SubmitBooking is the backend behind a flow's submission: it stores the
// booking, audits it and emails the visitor.
type SubmitBooking struct {
	repo         domain.Repository
	mailer       notify.EmailSender
	audit        *audit.Dispatcher
	calendar     CalendarInvalidator
	metrics      *metrics.BookingMetrics
	logger       *zap.Logger
	slotDuration time.Duration
	now          func() time.Time
}

func NewSubmitBooking(
	repo domain.Repository,
	mailer notify.EmailSender,
	audit *audit.Dispatcher,
	calendar CalendarInvalidator,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
	slotDuration time.Duration,
) *SubmitBooking {
	return &SubmitBooking{
		repo:         repo,
		mailer:       mailer,
		audit:        audit,
		calendar:     calendar,
		metrics:      m,
		logger:       logging.OrNop(logger),
		slotDuration: slotDuration,
		now:          time.Now,
	}
}

// ForSession binds the use case to a widget session for auditing.
func (uc *SubmitBooking) ForSession(sessionID string) domain.Submitter {
	return domain.SubmitterFunc(func(ctx context.Context, rec domain.Record) (*domain.Receipt, error) {
		return uc.execute(ctx, sessionID, rec)
	})
}

func (uc *SubmitBooking) Submit(ctx context.Context, rec domain.Record) (*domain.Receipt, error) {
	return uc.execute(ctx, "", rec)
}

func (uc *SubmitBooking) execute(
	ctx context.Context,
	sessionID string,
	rec domain.Record,
) (*domain.Receipt, error) {

	started := uc.now()

	start, err := slotStart(rec)
	if err != nil {
		uc.fail(sessionID, rec, started, err)
		return nil, err
	}

	b := &models.Booking{
		Reference: rec.Reference,
		Name:      rec.Name,
		Phone:     rec.Phone,
		Email:     rec.Email,
		Notes:     rec.Notes,
		Date:      rec.Date,
		SlotID:    rec.TimeSlotID,
		SlotTime:  rec.Time,
		StartTime: start,
		EndTime:   start.Add(uc.slotDuration),
		Lang:      rec.Lang,
		Status:    models.BookingStatusScheduled,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		err = fmt.Errorf("persist booking: %w", err)
		uc.fail(sessionID, rec, started, err)
		return nil, err
	}

	uc.dispatch(audit.Event{
		SessionID: sessionID,
		Action:    audit.ActionBookingCreated,
		Entity:    "booking",
		Reference: rec.Reference,
		Metadata: map[string]string{
			"slot_id": rec.TimeSlotID,
			"lang":    rec.Lang,
		},
	})

	if uc.calendar != nil {
		if err := uc.calendar.Invalidate(ctx); err != nil {
			uc.logger.Warn("calendar invalidation failed", zap.Error(err))
		}
	}

	if rec.Email != "" && uc.mailer != nil {
		msg := notify.ConfirmationEmail(notify.Confirmation{
			Reference: rec.Reference,
			Name:      rec.Name,
			Email:     rec.Email,
			Date:      rec.Date,
			Time:      rec.Time,
			Notes:     rec.Notes,
			Lang:      rec.Lang,
		})
		if err := uc.mailer.Send(ctx, msg); err != nil {
			uc.logger.Warn("confirmation email failed",
				zap.String("reference", rec.Reference),
				zap.Error(err),
			)
		}
	}

	uc.metrics.ObserveSubmission("success", uc.now().Sub(started).Seconds())

	return &domain.Receipt{
		Reference:   rec.Reference,
		SubmittedAt: uc.now(),
	}, nil
}

func (uc *SubmitBooking) fail(sessionID string, rec domain.Record, started time.Time, err error) {
	uc.metrics.ObserveSubmission("failure", uc.now().Sub(started).Seconds())
	uc.logger.Error("booking submission failed",
		zap.String("reference", rec.Reference),
		zap.String("slot_id", rec.TimeSlotID),
		zap.Error(err),
	)
	uc.dispatch(audit.Event{
		SessionID: sessionID,
		Action:    audit.ActionBookingFailed,
		Entity:    "booking",
		Reference: rec.Reference,
		Metadata:  map[string]string{"error": err.Error()},
	})
}

func (uc *SubmitBooking) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}

func slotStart(rec domain.Record) (time.Time, error) {
	t, err := time.Parse(availability.TimeLayout, rec.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q: %w", rec.Time, err)
	}
	return time.Date(
		rec.Date.Year(), rec.Date.Month(), rec.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		rec.Date.Location(),
	), nil
}
