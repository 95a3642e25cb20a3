// Package cli implements the ls-almanac command tree.
package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/site"
	"github.com/litescript/ls-almanac/internal/state"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Site      string
	Latitude  float64
	Longitude float64
	UTCOffset int
	Format    string // "json" | "text"
	LogLevel  string

	// Now supplies the current instant; tests pin it.
	Now func() time.Time

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Now: time.Now})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cmd := &cobra.Command{
		Use:   "ls-almanac",
		Short: "Sun, moon, sidereal time and DST for a fixed observer",
		Long: `ls-almanac computes sunrise and sunset, moon phase, sidereal time,
season and daylight-saving transitions for an observer site.

The site comes from --site (a YAML profile), ALMANAC_* environment
variables, and the --lat/--lon/--utc-offset flags, in increasing order of
precedence. Dates are YYYY-MM-DD[ HH:MM[:SS]] in standard local time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.logger = logging.New(logging.Options{
				Level:  logging.ParseLevel(opts.LogLevel),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Site, "site", "", "site profile YAML (default $"+site.EnvSiteFile+")")
	pf.Float64Var(&opts.Latitude, "lat", almanac.DefaultLatitude, "observer latitude in degrees, north positive")
	pf.Float64Var(&opts.Longitude, "lon", almanac.DefaultLongitude, "observer longitude in degrees, east positive")
	pf.IntVar(&opts.UTCOffset, "utc-offset", almanac.DefaultUTCOffset, "standard-time UTC offset in minutes")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(
		newNowCommand(opts),
		newSunCommand(opts),
		newMoonCommand(opts),
		newSiderealCommand(opts),
		newSeasonCommand(opts),
		newDSTCommand(opts),
		newTableCommand(opts),
		newCompareCommand(opts),
		newSiteCommand(opts),
		newServeCommand(opts),
		newTUICommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// profile resolves the site profile: file, then environment, then any
// position flags given explicitly on the command line.
func (o *RootOptions) profile(cmd *cobra.Command) (site.Profile, error) {
	p, err := site.Load(o.Site)
	if err != nil {
		return site.Profile{}, err
	}

	flags := cmd.Flags()
	overridden := false
	if flags.Changed("lat") {
		p.Latitude, overridden = o.Latitude, true
	}
	if flags.Changed("lon") {
		p.Longitude, overridden = o.Longitude, true
	}
	if flags.Changed("utc-offset") {
		p.UTCOffset, overridden = o.UTCOffset, true
	}
	if overridden {
		if err := p.Validate(); err != nil {
			return site.Profile{}, fmt.Errorf("invalid site flags: %w", err)
		}
	}

	o.log().Debug("site resolved",
		slog.String("name", p.Name),
		slog.Float64("lat", p.Latitude),
		slog.Float64("lon", p.Longitude),
		slog.Int("utc_offset", p.UTCOffset),
	)
	return p, nil
}

// engine resolves the profile and builds the almanac from it.
func (o *RootOptions) engine(cmd *cobra.Command) (site.Profile, *almanac.Almanac, error) {
	p, err := o.profile(cmd)
	if err != nil {
		return site.Profile{}, nil, WrapExitError(ExitUsage, "site", err)
	}
	a, err := p.Almanac()
	if err != nil {
		return site.Profile{}, nil, WrapExitError(ExitUsage, "site "+p.Name, err)
	}
	return p, a, nil
}

// instant parses s as standard local time, or returns the current standard
// local time when s is empty.
func (o *RootOptions) instant(a *almanac.Almanac, s string) (calendar.Time, error) {
	if s == "" {
		return state.Standard(a, o.Now())
	}
	t, err := calendar.Parse(s)
	if err != nil {
		return calendar.Time{}, WrapExitError(ExitUsage, "bad date", err)
	}
	return t, nil
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		return logging.Discard()
	}
	return o.logger
}

func (o *RootOptions) wantJSON() bool {
	return o.Format == "json"
}
