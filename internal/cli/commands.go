package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/reference"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/site"
	"github.com/litescript/ls-almanac/internal/version"
)

func newNowCommand(opts *RootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show every reading for an instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			t, err := opts.instant(a, at)
			if err != nil {
				return err
			}
			in := report.BuildInstant(a, p.Name, t)
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), in)
			}
			report.WriteInstant(cmd.OutOrStdout(), in)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "standard local time (default now)")
	return cmd
}

func newSunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sun [date]",
		Short: "Show sunrise, sunset and day length for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			var s string
			if len(args) == 1 {
				s = args[0]
			}
			t, err := opts.instant(a, s)
			if err != nil {
				return err
			}
			d := report.Build(a, p.Name, t)
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), d)
			}
			report.WriteDay(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

// MoonReading is the output of the moon command.
type MoonReading struct {
	Standard     string  `json:"standard"`
	Phase        float64 `json:"phase"`
	Name         string  `json:"name"`
	Illumination float64 `json:"illumination"`
	AgeDays      float64 `json:"age_days"`
}

func newMoonCommand(opts *RootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Show the moon phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			t, err := opts.instant(a, at)
			if err != nil {
				return err
			}
			p := a.MoonPhase(&t)
			m := MoonReading{
				Standard:     t.String(),
				Phase:        p,
				Name:         astro.PhaseName(p),
				Illumination: astro.Illumination(p),
				AgeDays:      astro.MoonAge(p),
			}
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), m)
			}
			rows(cmd.OutOrStdout(),
				"Moon", report.Title(m.Name),
				"Phase", fmt.Sprintf("%.3f", m.Phase),
				"Lit", fmt.Sprintf("%.0f%%", m.Illumination*100),
				"Age", fmt.Sprintf("%.1f days", m.AgeDays),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "standard local time (default now)")
	return cmd
}

// SiderealReading is the output of the sidereal command.
type SiderealReading struct {
	UTC  string `json:"utc"`
	GMST string `json:"gmst"`
	LMST string `json:"lmst"`
}

func newSiderealCommand(opts *RootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "sidereal",
		Short: "Show Greenwich and local mean sidereal time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			t, err := opts.instant(a, at)
			if err != nil {
				return err
			}
			utc, gmst, lmst := t, t, t
			a.GMT(&utc)
			a.Sidereal(&gmst, false)
			a.Sidereal(&lmst, true)
			r := SiderealReading{UTC: utc.String(), GMST: gmst.ClockString(), LMST: lmst.ClockString()}
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			rows(cmd.OutOrStdout(), "UTC", r.UTC, "GMST", r.GMST, "LMST", r.LMST)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "standard local time (default now)")
	return cmd
}

func newSeasonCommand(opts *RootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Show the season for the observer's hemisphere",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			t, err := opts.instant(a, at)
			if err != nil {
				return err
			}
			s := a.Season(&t).String()
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), map[string]string{"date": t.DateString(), "season": s})
			}
			rows(cmd.OutOrStdout(), "Season", report.Title(s))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "standard local time (default now)")
	return cmd
}

// DSTReading is the output of the dst command.
type DSTReading struct {
	Year  int    `json:"year"`
	Rule  string `json:"rule"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func newDSTCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dst [year]",
		Short: "Show the daylight-saving transitions for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			var year int
			if len(args) == 1 {
				year, err = strconv.Atoi(args[0])
				if err != nil || year < calendar.BaseYear || year > calendar.BaseYear+99 {
					return WrapExitError(ExitUsage, "bad year", fmt.Errorf("%q: want %d-%d", args[0], calendar.BaseYear, calendar.BaseYear+99))
				}
			} else {
				t, err := opts.instant(a, "")
				if err != nil {
					return err
				}
				year = t.FullYear()
			}

			start, end := a.DSTTransitions(year)
			r := DSTReading{Year: year, Rule: a.Rule().String(), Start: start.String(), End: end.String()}
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			rows(cmd.OutOrStdout(), "Rule", r.Rule, "Starts", r.Start, "Ends", r.End)
			return nil
		},
	}
}

// DriftReading is the output of the compare command.
type DriftReading struct {
	Date            string   `json:"date"`
	SunriseMinutes  *float64 `json:"sunrise_minutes,omitempty"`
	SunsetMinutes   *float64 `json:"sunset_minutes,omitempty"`
	SiderealSeconds float64  `json:"sidereal_seconds"`
}

func newCompareCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [date]",
		Short: "Compare the approximations against full-precision references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			var s string
			if len(args) == 1 {
				s = args[0]
			}
			t, err := opts.instant(a, s)
			if err != nil {
				return err
			}

			d := reference.Compare(a, t)
			r := DriftReading{Date: t.String(), SiderealSeconds: d.SiderealSeconds}
			if d.HasSunrise {
				r.SunriseMinutes = &d.SunriseMinutes
			}
			if d.HasSunset {
				r.SunsetMinutes = &d.SunsetMinutes
			}
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			rows(cmd.OutOrStdout(),
				"Instant", r.Date,
				"Sunrise", minutes(r.SunriseMinutes),
				"Sunset", minutes(r.SunsetMinutes),
				"GMST", fmt.Sprintf("%+.1fs", r.SiderealSeconds),
			)
			return nil
		},
	}
}

func minutes(m *float64) string {
	if m == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1fm", *m)
}

func newSiteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "site",
		Short: "Print the resolved site profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.profile(cmd)
			if err != nil {
				return WrapExitError(ExitUsage, "site", err)
			}
			if opts.wantJSON() {
				return report.WriteJSON(cmd.OutOrStdout(), p)
			}
			return site.Write(cmd.OutOrStdout(), p)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-almanac %s\n", version.Version)
		},
	}
}
