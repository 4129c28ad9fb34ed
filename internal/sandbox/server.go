package sandbox

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Options configure a sandbox server.
type Options struct {
	JWTSecret string
	Logger    zerolog.Logger
	// Seed loads the fixed demo roster on boot.
	Seed bool
}

// Server bundles the echo engine with its backing store so tests can
// reach into state directly.
type Server struct {
	Echo  *echo.Echo
	Store *Store
}

// New assembles the sandbox server. Callers run it with Echo.Start or
// mount Echo as an http.Handler in tests.
func New(opts Options) *Server {
	store := NewStore()
	if opts.Seed {
		store.Seed()
	}
	auth := &authenticator{secret: []byte(opts.JWTSecret)}
	logger := opts.Logger.With().Str("component", "sandbox").Logger()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h := &handlers{store: store, auth: auth}
	h.register(e)

	return &Server{Echo: e, Store: store}
}

// errorHandler renders every error as the {"detail": ...} payload the
// client's error decoder expects.
func errorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		detail := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		if err := c.JSON(status, map[string]string{"detail": detail}); err != nil {
			logger.Error().Err(err).Msg("writing error response")
		}
	}
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
