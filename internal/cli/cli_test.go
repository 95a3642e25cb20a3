package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/site"
	"github.com/litescript/ls-almanac/internal/store"
	"github.com/litescript/ls-almanac/internal/version"
)

var fixedNow = time.Date(2023, 3, 12, 17, 0, 0, 0, time.UTC)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{site.EnvName, site.EnvLatitude, site.EnvLongitude, site.EnvUTCOffset, site.EnvSiteFile} {
		t.Setenv(k, "")
	}

	cmd := newRootCommand(&RootOptions{Now: func() time.Time { return fixedNow }})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ls-almanac", cmd.Use)
	assert.Contains(t, cmd.Long, "sidereal")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"now", "sun", "moon", "sidereal", "season", "dst", "table", "compare", "site", "serve", "tui", "version"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	defaults := map[string]string{
		"site":       "",
		"lat":        "27",
		"lon":        "-82",
		"utc-offset": "-300",
		"format":     "text",
		"log-level":  "warn",
	}
	for name, want := range defaults {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.DefValue, name)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "now", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestNow_Text(t *testing.T) {
	out, err := run(t, "now", "--at", "2023-03-12 12:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Civil      2023-03-12 13:00:00 (DST)")
	assert.Contains(t, out, "GMST       04:20:19")
	assert.Contains(t, out, "Season     Winter")
}

func TestNow_JSONUsesClock(t *testing.T) {
	out, err := run(t, "now", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2023-03-12 12:00:00", got["standard"])
	assert.Equal(t, "2023-03-12 17:00:00", got["utc"])
}

func TestNow_BadDate(t *testing.T) {
	_, err := run(t, "now", "--at", "2023-13-01")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestSun(t *testing.T) {
	out, err := run(t, "sun", "2023-03-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunrise    07:39")
	assert.Contains(t, out, "Sunset     19:36")
	assert.Contains(t, out, "Daylight   11h57m")
}

func TestSun_PolarNight(t *testing.T) {
	out, err := run(t, "sun", "2023-12-21", "--lat", "70", "--lon", "20", "--utc-offset", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunrise    none")
}

func TestMoon(t *testing.T) {
	out, err := run(t, "moon", "--at", "2024-01-01T12:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Moon       Last Quarter")
	assert.Contains(t, out, "Lit        68%")
}

func TestSidereal_JSON(t *testing.T) {
	out, err := run(t, "sidereal", "--at", "2024-07-04T21:15:30", "--format", "json")
	require.NoError(t, err)

	var got SiderealReading
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, SiderealReading{UTC: "2024-07-05 02:15:30", GMST: "21:09:47", LMST: "15:41:47"}, got)
}

func TestSeason_SouthernHemisphere(t *testing.T) {
	out, err := run(t, "season", "--at", "2024-01-01", "--lat", "-33.87", "--lon", "151.21", "--utc-offset", "600")
	require.NoError(t, err)
	assert.Contains(t, out, "Summer")
}

func TestDST(t *testing.T) {
	out, err := run(t, "dst", "2023")
	require.NoError(t, err)
	assert.Contains(t, out, "Starts     2023-03-12 02:00:00")
	assert.Contains(t, out, "Ends       2023-11-05 02:00:00")

	_, err = run(t, "dst", "1999")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestBadPositionFlag(t *testing.T) {
	_, err := run(t, "now", "--lat", "95")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestTable_Range(t *testing.T) {
	out, err := run(t, "table", "--from", "2023-03-10", "--to", "2023-03-14")
	require.NoError(t, err)
	assert.Contains(t, out, "Almanac for default")
	assert.Contains(t, out, "2023-03-12 Sun yes 07:39")
	assert.Contains(t, out, "Total: 5 days")
}

func TestTable_MonthJSONSavesToDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")
	out, err := run(t, "table", "--month", "2024-02", "--format", "json", "--db", path)
	require.NoError(t, err)

	var days []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	assert.Len(t, days, 29)

	ctx := context.Background()
	db, err := store.Open(ctx, store.DefaultConfig(path), logging.Discard())
	require.NoError(t, err)
	defer db.Close()
	stored, err := db.Days(ctx, store.KeyFor("default", almanac.New()), calendar.Date(2024, 2, 1, 0, 0, 0), calendar.Date(2024, 2, 29, 0, 0, 0))
	require.NoError(t, err)
	assert.Len(t, stored, 29)
}

func TestTable_DBKeepsObserversApart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")
	_, err := run(t, "table", "--from", "2023-06-21", "--to", "2023-06-21", "--db", path)
	require.NoError(t, err)
	_, err = run(t, "table", "--from", "2023-06-21", "--to", "2023-06-21", "--db", path,
		"--lat", "59.9", "--lon", "10.7", "--utc-offset", "60")
	require.NoError(t, err)

	oslo := almanac.New()
	require.True(t, oslo.Position(59.9, 10.7))
	require.True(t, oslo.TimeZone(60))

	ctx := context.Background()
	db, err := store.Open(ctx, store.DefaultConfig(path), logging.Discard())
	require.NoError(t, err)
	defer db.Close()

	day := calendar.Date(2023, 6, 21, 0, 0, 0)
	tampaDays, err := db.Days(ctx, store.KeyFor("default", almanac.New()), day, day)
	require.NoError(t, err)
	osloDays, err := db.Days(ctx, store.KeyFor("default", oslo), day, day)
	require.NoError(t, err)
	require.Len(t, tampaDays, 1)
	require.Len(t, osloDays, 1)
	assert.NotEqual(t, tampaDays[0].Sunrise, osloDays[0].Sunrise)
}

func TestTable_DefaultMonth(t *testing.T) {
	out, err := run(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "2023-03-31")
	assert.Contains(t, out, "Total: 31 days")
}

func TestTable_BadMonth(t *testing.T) {
	_, err := run(t, "table", "--month", "1999-01")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestCompare_JSON(t *testing.T) {
	out, err := run(t, "compare", "2023-06-21", "--format", "json")
	require.NoError(t, err)

	var got DriftReading
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.SunriseMinutes)
	require.NotNil(t, got.SunsetMinutes)
	assert.InDelta(t, 0, *got.SunriseMinutes, 10)
	assert.InDelta(t, 0, *got.SunsetMinutes, 10)
	assert.InDelta(t, 0, got.SiderealSeconds, 4)
}

func TestSite_YAML(t *testing.T) {
	out, err := run(t, "site", "--lat", "51.5", "--lon", "-0.1", "--utc-offset", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "latitude: 51.5")
	assert.Contains(t, out, "longitude: -0.1")
	assert.Contains(t, out, "utc_offset: 0")
}

func TestTUI_RequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := run(t, "tui")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoTTY))
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ls-almanac "+version.Version+"\n", out)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitUsage, GetExitCode(WrapExitError(ExitUsage, "bad", errors.New("x"))))
}
