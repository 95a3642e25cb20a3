package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/store"
)

type tableOptions struct {
	month string
	from  string
	to    string
	db    string
}

func newTableCommand(opts *RootOptions) *cobra.Command {
	topts := &tableOptions{}
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print a day-by-day almanac table",
		Long: `Print one row per day with sunrise, sunset, solar noon, day length,
moon and season. Select a calendar month with --month, or an inclusive
range with --from and --to. With --db the rows are also saved to SQLite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, opts, topts)
		},
	}
	cmd.Flags().StringVar(&topts.month, "month", "", "calendar month YYYY-MM (default current month)")
	cmd.Flags().StringVar(&topts.from, "from", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&topts.to, "to", "", "last date YYYY-MM-DD")
	cmd.Flags().StringVar(&topts.db, "db", "", "also save rows to this SQLite database")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("month", "from")
	return cmd
}

func runTable(cmd *cobra.Command, opts *RootOptions, topts *tableOptions) error {
	p, a, err := opts.engine(cmd)
	if err != nil {
		return err
	}

	var days []report.Daily
	switch {
	case topts.from != "":
		from, err := calendar.Parse(topts.from)
		if err != nil {
			return WrapExitError(ExitUsage, "bad --from", err)
		}
		to, err := calendar.Parse(topts.to)
		if err != nil {
			return WrapExitError(ExitUsage, "bad --to", err)
		}
		days = report.Range(a, p.Name, from, to)
	default:
		year, month, err := opts.month(a, topts.month)
		if err != nil {
			return err
		}
		days = report.Month(a, p.Name, year, month)
	}

	if topts.db != "" {
		if err := saveDays(cmd, opts, topts.db, store.KeyFor(p.Name, a), days); err != nil {
			return err
		}
	}

	if opts.wantJSON() {
		return report.WriteJSON(cmd.OutOrStdout(), days)
	}
	report.WriteTable(cmd.OutOrStdout(), p.Name, days)
	return nil
}

// month parses YYYY-MM, defaulting to the current standard-time month.
func (o *RootOptions) month(a *almanac.Almanac, s string) (int, int, error) {
	if s == "" {
		now := o.Now().UTC().Add(time.Duration(a.UTCOffset()) * time.Minute)
		return now.Year(), int(now.Month()), nil
	}
	tm, err := time.Parse("2006-01", s)
	if err != nil || tm.Year() < calendar.BaseYear || tm.Year() > calendar.BaseYear+99 {
		return 0, 0, WrapExitError(ExitUsage, "bad --month", fmt.Errorf("%q: want YYYY-MM in %d-%d", s, calendar.BaseYear, calendar.BaseYear+99))
	}
	return tm.Year(), int(tm.Month()), nil
}

func saveDays(cmd *cobra.Command, opts *RootOptions, path string, key store.Key, days []report.Daily) error {
	ctx := cmd.Context()
	db, err := store.Open(ctx, store.DefaultConfig(path), opts.log())
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", path, err)
	}
	if err := db.SaveDays(ctx, key, days); err != nil {
		return err
	}
	opts.log().Info("days saved", slog.String("db", path), slog.Int("count", len(days)))
	return nil
}
