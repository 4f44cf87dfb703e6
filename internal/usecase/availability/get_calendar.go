package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/metrics"
)

// Policy names accepted by NewPolicy.
const (
	PolicyRandom = "random"
	PolicyOpen   = "open"
	PolicyBooked = "booked"
)

type CalendarCache interface {
	Get(ctx context.Context, key string) ([]domain.DayAvailability, bool, error)
	Set(ctx context.Context, key string, days []domain.DayAvailability, ttl time.Duration) error
	Purge(ctx context.Context) error
}

type GetCalendarInput struct {
	Schedule   domain.Schedule
	WindowDays int
	PolicyName string
	Ratio      float64
	Seed       uint64
	CacheTTL   time.Duration
}

// GetCalendar produces the booking window for a given day. A calendar is
// generated once per day and key, then served from the cache.
type GetCalendar struct {
	in      GetCalendarInput
	policy  domain.Policy
	cache   CalendarCache
	repo    booking.Repository
	metrics *metrics.BookingMetrics
	logger  *zap.Logger
}

func NewGetCalendar(
	in GetCalendarInput,
	cache CalendarCache,
	repo booking.Repository,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
) (*GetCalendar, error) {

	if err := in.Schedule.Validate(); err != nil {
		return nil, err
	}
	if in.WindowDays <= 0 {
		in.WindowDays = domain.DefaultWindowDays
	}

	policy, err := NewPolicy(in.PolicyName, in.Ratio, in.Seed)
	if err != nil {
		return nil, err
	}
	if in.PolicyName == PolicyBooked && repo == nil {
		return nil, fmt.Errorf("availability: policy %q needs a booking repository", PolicyBooked)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GetCalendar{
		in:      in,
		policy:  policy,
		cache:   cache,
		repo:    repo,
		metrics: m,
		logger:  logger,
	}, nil
}

// NewPolicy maps a configured policy name to a slot policy.
func NewPolicy(name string, ratio float64, seed uint64) (domain.Policy, error) {
	switch name {
	case "", PolicyRandom:
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("availability: ratio %v out of [0,1]", ratio)
		}
		return domain.NewRandomPolicy(seed, ratio), nil
	case PolicyOpen, PolicyBooked:
		return domain.AlwaysAvailable, nil
	default:
		return nil, fmt.Errorf("availability: unknown policy %q", name)
	}
}

func (uc *GetCalendar) WindowDays() int {
	return uc.in.WindowDays
}

func (uc *GetCalendar) Execute(ctx context.Context, today time.Time) ([]domain.DayAvailability, error) {
	start := domain.StartOfDay(today)
	key := uc.cacheKey(start)

	if uc.cache != nil {
		days, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("calendar cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			uc.metrics.ObserveCalendar("cache")
			return days, nil
		}
	}

	policy := uc.policy
	if uc.in.PolicyName == PolicyBooked {
		ids, err := uc.repo.ListBookedSlotIDs(ctx, start, start.AddDate(0, 0, uc.in.WindowDays))
		if err != nil {
			return nil, fmt.Errorf("list booked slots: %w", err)
		}
		policy = domain.ExcludeBooked(ids, policy)
	}

	days, err := domain.GenerateAvailability(start, uc.in.WindowDays, uc.in.Schedule, policy)
	if err != nil {
		return nil, err
	}
	uc.metrics.ObserveCalendar("generated")

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, days, uc.in.CacheTTL); err != nil {
			uc.logger.Warn("calendar cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return days, nil
}

// Invalidate drops cached calendars so newly persisted bookings show up.
// Only the booked policy reads bookings, so other policies keep the cache.
func (uc *GetCalendar) Invalidate(ctx context.Context) error {
	if uc.cache == nil || uc.in.PolicyName != PolicyBooked {
		return nil
	}
	return uc.cache.Purge(ctx)
}

func (uc *GetCalendar) cacheKey(start time.Time) string {
	return fmt.Sprintf("%s:%d:%s-%s:%d",
		start.Format(domain.DateLayout),
		uc.in.WindowDays,
		uc.in.Schedule.Open,
		uc.in.Schedule.Close,
		int(uc.in.Schedule.SlotDuration/time.Minute),
	)
}
