package availability

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultAvailableRatio is the share of weekday slots the random policy
// reports as open.
const DefaultAvailableRatio = 0.7

// Policy decides whether the slot starting at hhmm on day can be booked.
type Policy func(day time.Time, hhmm string) (bool, error)

var ErrNilPolicy = errors.New("availability: nil policy")

// PolicyError reports a policy failure. It is a configuration error and
// callers should not try to recover from it.
type PolicyError struct {
	Day  time.Time
	Time string
	Err  error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("availability: policy failed for %s %s: %v", e.Day.Format(DateLayout), e.Time, e.Err)
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}

func AlwaysAvailable(time.Time, string) (bool, error) {
	return true, nil
}

// NewRandomPolicy opens roughly ratio of the slots. Each slot's draw depends
// only on seed and the slot id, so a slot keeps its answer however often and
// in whatever order it is asked.
func NewRandomPolicy(seed uint64, ratio float64) Policy {
	return func(day time.Time, hhmm string) (bool, error) {
		return slotDraw(seed, SlotID(day, hhmm)) < ratio, nil
	}
}

func slotDraw(seed uint64, id string) float64 {
	h := xxhash.Sum64String(id)
	return rand.New(rand.NewPCG(seed, h^0x9e3779b97f4a7c15)).Float64()
}

// ExcludeBooked marks the given slot ids as taken and defers every other
// slot to next.
func ExcludeBooked(bookedIDs []string, next Policy) Policy {
	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}
	return func(day time.Time, hhmm string) (bool, error) {
		if _, ok := booked[SlotID(day, hhmm)]; ok {
			return false, nil
		}
		if next == nil {
			return false, ErrNilPolicy
		}
		return next(day, hhmm)
	}
}
