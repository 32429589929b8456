package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrExternalDBNameEmpty error if the external membership store database name is missing.
	ErrExternalDBNameEmpty = errors.New("toml config external.name can not be empty")

	// ErrHostDBNameEmpty error if the host identity store database name is missing.
	ErrHostDBNameEmpty = errors.New("toml config host.name can not be empty")

	// ErrUnknownEngine error if a store engine is not mysql, postgres or sqlite.
	ErrUnknownEngine = errors.New("store engine must be one of mysql, postgres, sqlite")

	// ErrConfigNil error if a component is handed a nil configuration.
	ErrConfigNil = errors.New("config is nil")
)
