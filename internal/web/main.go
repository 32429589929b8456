// Package web implements the HTTP dispatch surface of the bridge: the login
// endpoint consumed by the host's dispatcher, a liveness probe and the
// prometheus metrics endpoint.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/admidio-bridge/admidio-bridge/internal/bridge"
	"github.com/admidio-bridge/admidio-bridge/internal/config"
	loggerfiber "github.com/admidio-bridge/admidio-bridge/internal/logger/adapter/fiber"
	authhandler "github.com/admidio-bridge/admidio-bridge/internal/web/handler/auth"
)

// CheckAlivePath is the liveness probe path.
const CheckAlivePath = "/healthz"

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	alive atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the service down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail the liveness probe first
	// so load balancers remove this instance from active targets.
	log.Info().Msgf(
		"graceful shutdown: return 503 for %d seconds to let the LB drain this instance",
		s.cfg.Webserver.ShutDownTime,
	)

	s.alive.Store(false)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, b *bridge.Bridge) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if b == nil {
		panic("bridge cannot be nil")
	}

	s := &Service{
		cfg: cfg,
		App: fiber.New(fiber.Config{
			AppName:               cfg.Title,
			DisableStartupMessage: !cfg.DevMode,
		}),
	}

	s.alive.Store(true)

	s.App.Use(loggerfiber.New(loggerfiber.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	s.App.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !s.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("ok")
	})

	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if err := authhandler.Handler.Init(s.App, b); err != nil {
		log.Fatal().Err(err).Msg("failed to init auth handler")
	}

	return s
}
