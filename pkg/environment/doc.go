// Package environment defines deployment stage names (development, staging,
// production) and helpers for carrying the active stage through a context.
// The logger presets key off these names to pick format and level defaults.
package environment
