// Package daemon wires configuration, the two database connections and the
// bridge core into the running web service.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/admidio-bridge/admidio-bridge/internal/bridge"
	"github.com/admidio-bridge/admidio-bridge/internal/config"
	"github.com/admidio-bridge/admidio-bridge/internal/db/dsn"
	"github.com/admidio-bridge/admidio-bridge/internal/db/models"
	"github.com/admidio-bridge/admidio-bridge/internal/extstore"
	"github.com/admidio-bridge/admidio-bridge/internal/hoststore"
	"github.com/admidio-bridge/admidio-bridge/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// openExternal connects to the membership store. The bridge only ever reads
// from it, so no migrations are run against it.
func openExternal(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg.External)
	if err != nil {
		return nil, fmt.Errorf("external store: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to external store: %w", err)
	}

	return db, nil
}

// openHost connects to the host identity store and migrates the bridge-owned
// tables. TranslateError is required so duplicate-key races surface as
// gorm.ErrDuplicatedKey across all three engines.
func openHost(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("host store: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host store: %w", err)
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.UserGroup{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate host store: %w", err)
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	externalDB, err := openExternal(cfg)
	if err != nil {
		return nil, err
	}

	hostDB, err := openHost(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("external_engine", cfg.External.Engine).
		Str("host_engine", cfg.Host.Engine).
		Msg("stores connected")

	b := bridge.New(
		extstore.NewClient(externalDB, cfg.External.Prefix),
		bridge.NewVerifier(),
		bridge.NewProvisioner(hoststore.NewStore(hostDB)),
		cfg.Bridge.ResponseType,
	)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, b),
	}, nil
}
