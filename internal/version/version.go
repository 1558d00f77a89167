// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Universe file hot reload, headless snapshot and validate commands
// 0.2.0 - Sun system, orbiting project bodies, hover tooltips
// 0.1.0 - Initial release: zoomable hierarchy navigation in the terminal
