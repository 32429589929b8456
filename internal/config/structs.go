package config

import (
	"github.com/admidio-bridge/admidio-bridge/internal/logger"
)

// Bridge holds settings for the authentication bridge itself.
type Bridge struct {
	// ResponseType tags every AuthResponse so the dispatcher can recognize
	// this bridge as the authenticator of record. Defaults to "Admidio".
	ResponseType string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	External  DB // Admidio membership store (read-only)
	Host      DB // host identity store (users/groups owned by the host app)
	Bridge    Bridge
	Log       logger.Log
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
