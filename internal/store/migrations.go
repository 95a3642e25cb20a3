package store

// migrations are applied in version order.
var migrations = map[int]string{
	1: migrationV1Days,
	2: migrationV2Observer,
}

// Sunrise and sunset are NULL on polar days and nights. Dates are stored as
// YYYY-MM-DD so range queries compare lexically.
const migrationV1Days = `
CREATE TABLE IF NOT EXISTS almanac_days (
	site             TEXT    NOT NULL,
	date             TEXT    NOT NULL,
	weekday          TEXT    NOT NULL,
	day_of_year      INTEGER NOT NULL,
	dst              INTEGER NOT NULL,
	sunrise          TEXT,
	sunset           TEXT,
	solar_noon       TEXT    NOT NULL,
	daylight_minutes INTEGER NOT NULL,
	moon_phase       REAL    NOT NULL,
	moon_name        TEXT    NOT NULL,
	illumination     REAL    NOT NULL,
	season           TEXT    NOT NULL,
	PRIMARY KEY (site, date)
);
`

// Version 1 rows do not record the observer they were computed for, so
// they are discarded rather than migrated.
const migrationV2Observer = `
DROP TABLE IF EXISTS almanac_days;
CREATE TABLE almanac_days (
	site             TEXT    NOT NULL,
	observer         TEXT    NOT NULL,
	date             TEXT    NOT NULL,
	weekday          TEXT    NOT NULL,
	day_of_year      INTEGER NOT NULL,
	dst              INTEGER NOT NULL,
	sunrise          TEXT,
	sunset           TEXT,
	solar_noon       TEXT    NOT NULL,
	daylight_minutes INTEGER NOT NULL,
	moon_phase       REAL    NOT NULL,
	moon_name        TEXT    NOT NULL,
	illumination     REAL    NOT NULL,
	season           TEXT    NOT NULL,
	PRIMARY KEY (site, observer, date)
);
`

const upsertDay = `
INSERT INTO almanac_days (
	site, observer, date, weekday, day_of_year, dst,
	sunrise, sunset, solar_noon, daylight_minutes,
	moon_phase, moon_name, illumination, season
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (site, observer, date) DO UPDATE SET
	weekday = excluded.weekday,
	day_of_year = excluded.day_of_year,
	dst = excluded.dst,
	sunrise = excluded.sunrise,
	sunset = excluded.sunset,
	solar_noon = excluded.solar_noon,
	daylight_minutes = excluded.daylight_minutes,
	moon_phase = excluded.moon_phase,
	moon_name = excluded.moon_name,
	illumination = excluded.illumination,
	season = excluded.season
`

const selectDays = `
SELECT site, date, weekday, day_of_year, dst,
	sunrise, sunset, solar_noon, daylight_minutes,
	moon_phase, moon_name, illumination, season
FROM almanac_days
WHERE site = ? AND observer = ? AND date >= ? AND date <= ?
ORDER BY date
`
