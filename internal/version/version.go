// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API with SQLite day cache, live dashboard, reference drift report
// 0.2.0 - Site profiles (YAML, env, schema), month and range tables
// 0.1.0 - Initial release: sunrise/sunset, moon phase, sidereal time, DST rules
