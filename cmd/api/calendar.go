package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/booking-widget/internal/config"
	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/dto"
	"github.com/BruksfildServices01/booking-widget/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/booking-widget/internal/usecase/availability"
)

type calendarOptions struct {
	date   string
	days   int
	seed   uint64
	policy string
	ratio  float64
}

// newCalendarCmd prints a generated window without touching the database
// or the cache.
func newCalendarCmd() *cobra.Command {
	var opts calendarOptions

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the availability window as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			loc := timezone.Location(cfg.Timezone)

			today := timezone.Today(time.Now(), loc)
			if opts.date != "" {
				d, err := timezone.ParseDate(opts.date, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", opts.date, err)
				}
				today = d
			}

			if !cmd.Flags().Changed("seed") {
				opts.seed = cfg.AvailabilitySeed
			}
			if opts.policy == ucAvailability.PolicyBooked {
				return fmt.Errorf("policy %q needs the database; use serve", opts.policy)
			}

			policy, err := ucAvailability.NewPolicy(opts.policy, opts.ratio, opts.seed)
			if err != nil {
				return err
			}

			schedule := availability.Schedule{
				Open:         cfg.OpenTime,
				Close:        cfg.CloseTime,
				SlotDuration: cfg.SlotDuration(),
			}
			days, err := availability.GenerateAvailability(today, opts.days, schedule, policy)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.Days(days))
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "first day of the window (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&opts.days, "days", availability.DefaultWindowDays, "number of days in the window")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the random policy, defaults to AVAILABILITY_SEED")
	cmd.Flags().StringVar(&opts.policy, "policy", ucAvailability.PolicyRandom, "availability policy: random or open")
	cmd.Flags().Float64Var(&opts.ratio, "ratio", availability.DefaultAvailableRatio, "share of open slots for the random policy")

	return cmd
}
