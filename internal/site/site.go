// Package site loads the observer profile: position, standard-time offset
// and DST rule. Profiles come from a YAML file, are overridden from the
// environment (optionally seeded from a .env file) and are checked
// against a CUE schema before use.
package site

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/dst"
)

// Environment variables that override profile fields.
const (
	EnvName      = "ALMANAC_SITE_NAME"
	EnvLatitude  = "ALMANAC_LAT"
	EnvLongitude = "ALMANAC_LON"
	EnvUTCOffset = "ALMANAC_UTC_OFFSET"
	EnvSiteFile  = "ALMANAC_SITE"
)

// Profile is an observer configuration.
type Profile struct {
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
	UTCOffset int      `json:"utc_offset" yaml:"utc_offset"`
	DST       dst.Rule `json:"dst" yaml:"dst"`
}

// Default mirrors the engine defaults.
func Default() Profile {
	return Profile{
		Name:      "default",
		Latitude:  almanac.DefaultLatitude,
		Longitude: almanac.DefaultLongitude,
		UTCOffset: almanac.DefaultUTCOffset,
		DST:       dst.USA,
	}
}

// Load reads the profile at path (or the defaults when path is empty),
// applies environment overrides and validates the result.
func Load(path string) (Profile, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(EnvSiteFile)
	}

	p := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("read site file: %w", err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("parse site file %s: %w", path, err)
		}
	}

	p, err := ApplyEnv(p, os.Getenv)
	if err != nil {
		return Profile{}, err
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid site %q: %w", p.Name, err)
	}
	return p, nil
}

// ApplyEnv overrides fields of p from the variables returned by getenv.
func ApplyEnv(p Profile, getenv func(string) string) (Profile, error) {
	if v := getenv(EnvName); v != "" {
		p.Name = v
	}
	if v := getenv(EnvLatitude); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", EnvLatitude, err)
		}
		p.Latitude = f
	}
	if v := getenv(EnvLongitude); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", EnvLongitude, err)
		}
		p.Longitude = f
	}
	if v := getenv(EnvUTCOffset); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", EnvUTCOffset, err)
		}
		p.UTCOffset = n
	}
	return p, nil
}

// Almanac builds an engine configured from p. Each setter revalidates its
// own fields.
func (p Profile) Almanac() (*almanac.Almanac, error) {
	a := almanac.New()
	if !a.Position(p.Latitude, p.Longitude) {
		return nil, fmt.Errorf("position %.4f,%.4f out of range", p.Latitude, p.Longitude)
	}
	if !a.TimeZone(p.UTCOffset) {
		return nil, fmt.Errorf("utc offset %d out of range", p.UTCOffset)
	}
	r := p.DST
	if !a.DstRules(r.StartMonth, r.StartWeek, r.EndMonth, r.EndWeek, r.Advance) {
		return nil, fmt.Errorf("dst rule %s: %w", r, dst.ErrInvalidRule)
	}
	return a, nil
}

// Write encodes p as YAML.
func Write(w io.Writer, p Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode site: %w", err)
	}
	return enc.Close()
}
