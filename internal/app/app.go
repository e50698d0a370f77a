package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"skillbridge/internal/auth"
	"skillbridge/internal/backend"
	"skillbridge/internal/config"
	"skillbridge/internal/constants"
	"skillbridge/internal/metrics"
	"skillbridge/internal/submit"
	"skillbridge/internal/view"
	errorviews "skillbridge/views/errors"
)

func New(config *config.Config) *fiber.App {
	fiberlog.Debug("Starting app in env: ", config.Env)

	app := fiber.New(fiber.Config{
		AppName:      "SkillBridge 0.1.0",
		ErrorHandler: errorHandler,
	})

	sessionStore := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + constants.SessionCookieName,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
		Storage:        newSessionStorage(config),
	})
	sessions := auth.NewManager(sessionStore)
	m := metrics.New()

	app.Use(logger.New(logger.Config{
		DisableColors: config.DisableLogColors,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.EnableStackTrace,
	}))
	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(favicon.New())
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(config.StaticFS),
		PathPrefix: "static",
	}))
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	if !config.DisableCSRF {
		app.Use(newCSRF(config, sessionStore))
	}
	app.Use(LoadSession(sessions))

	client := backend.Observed(config.Backend, m)

	login := LoginHandlers{
		sessions: sessions,
		backend:  client,
		forms:    submit.NewRegistry(),
		metrics:  m,
		rules:    config.Rules,
	}
	profile := ProfileHandlers{
		sessions: sessions,
		backend:  client,
	}

	app.Get("/", Landing)

	app.Get("/login", RedirectIfLoggedIn, login.LoginForm)
	app.Post("/login", RedirectIfLoggedIn, login.SubmitLogin)
	app.Get("/register", RedirectIfLoggedIn, login.Register)
	app.Post("/register", RedirectIfLoggedIn, login.SubmitRegistration)

	app.Post("/logout", login.Logout)

	app.Get(auth.VolunteerProfilePath, RequireLoggedIn, RequireRole(auth.RoleVolunteer), profile.Show)
	app.Get(auth.NGOProfilePath, RequireLoggedIn, RequireRole(auth.RoleNGO), profile.Show)

	return app
}

func newCSRF(config *config.Config, sessionStore *session.Store) fiber.Handler {
	// Combine two CSRF extractors: use form field as default
	// so forms work without JS, with header as fallback.
	csrfFromForm := csrf.CsrfFromForm(constants.CsrfInputName)
	csrfFromHeader := csrf.CsrfFromHeader("X-CSRF-Token")

	return csrf.New(csrf.Config{
		CookieSecure: config.CookieSecure,
		Session:      sessionStore,
		Extractor: func(c *fiber.Ctx) (string, error) {
			token, err := csrfFromForm(c)
			if err == nil {
				return token, nil
			}

			if errors.Is(err, csrf.ErrMissingForm) {
				return csrfFromHeader(c)
			}

			return "", err
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			fiberlog.Error("CSRF error: ", err.Error())
			return view.RenderComponent(c, fiber.StatusForbidden,
				errorviews.GenericError(fiber.StatusForbidden, "Forbidden"))
		},
		ContextKey: constants.CsrfTokenContextKey,
		CookieName: constants.CsrfCookieName,
	})
}
