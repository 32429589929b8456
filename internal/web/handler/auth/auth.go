// Package auth provides the HTTP handlers invoked by the host's dispatch
// mechanism: credential authentication and post-login authorization sync.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/admidio-bridge/admidio-bridge/internal/bridge"
	"github.com/admidio-bridge/admidio-bridge/internal/extstore"
)

const (
	// Path is the base path for the authentication endpoints.
	Path = "/auth"

	// LoginPath handles credential verification plus post-login sync.
	LoginPath = "/login"

	// SyncPath retries the authorization sync for an already
	// authenticated username.
	SyncPath = "/sync"
)

// ErrNilDependency is returned when Init is called without app or bridge.
var ErrNilDependency = errors.New("app or bridge is nil")

// Service is the auth handler service.
type Service struct {
	bridge *bridge.Bridge
}

// Handler is the auth handler.
var Handler = Service{}

// Init initializes the auth handler.
func (s *Service) Init(app *fiber.App, b *bridge.Bridge) error {
	if app == nil || b == nil {
		return ErrNilDependency
	}

	s.bridge = b

	app.Route(Path, func(router fiber.Router) {
		router.Post(LoginPath, s.PostLogin)
		router.Post(SyncPath, s.PostSync)
	})

	return nil
}

// PostLogin handles one authentication attempt. The response body is always
// the bridge's AuthResponse; the HTTP status mirrors its outcome.
func (s *Service) PostLogin(c *fiber.Ctx) error {
	var creds bridge.Credentials

	if err := c.BodyParser(&creds); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp := s.bridge.Authenticate(creds)

	if resp.Status == bridge.StatusSuccess {
		// Mirror the dispatcher contract: a successful login triggers the
		// authorization sync. A sync failure does not revoke the
		// authentication result, it is logged and retriable via /auth/sync.
		if err := s.bridge.SyncAuthorization(creds.Username); err != nil {
			log.Warn().Err(err).Str("username", creds.Username).Msg("post-login authorization sync failed")
		}

		return c.JSON(resp)
	}

	return c.Status(statusFor(resp.ErrorKind)).JSON(resp)
}

// syncRequest is the body of a sync retry request.
type syncRequest struct {
	Username string `json:"username" form:"username"`
}

// PostSync re-runs the authorization sync for a username. Idempotent.
func (s *Service) PostSync(c *fiber.Ctx) error {
	var req syncRequest

	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.bridge.SyncAuthorization(req.Username); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("authorization sync failed")

		if errors.Is(err, extstore.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown username")
		}

		resp := s.bridge.SyncFailure(err)

		return c.Status(statusFor(resp.ErrorKind)).JSON(resp)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// statusFor maps a failure kind to its HTTP status code.
func statusFor(kind bridge.ErrorKind) int {
	switch kind {
	case bridge.KindStoreUnavailable, bridge.KindPartialProvisioning:
		return fiber.StatusServiceUnavailable
	case bridge.KindEmptySecret:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusUnauthorized
	}
}
