package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the target struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded is returned when a config value could not be
	// retrieved after a load attempt.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
