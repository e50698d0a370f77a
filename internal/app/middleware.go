package app

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"skillbridge/internal/auth"
	"skillbridge/internal/constants"
	"skillbridge/internal/view"
)

// LoadSession attaches the session record, if any, to the request so that
// handlers and components can read it.
func LoadSession(sessions *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, ok, err := sessions.Load(c)
		if err != nil {
			return err
		}
		if ok {
			c.Locals(constants.SessionRecordKey, record)
		}
		return c.Next()
	}
}

func RequireLoggedIn(c *fiber.Ctx) error {
	if _, ok := auth.Current(c); !ok {
		fiberlog.Debug("not logged in, redirecting to login")
		return view.Redirect(c, "/login")
	}
	return c.Next()
}

// RequireRole sends users with another role to their own profile.
func RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, _ := auth.Current(c)
		if record.Role != role {
			return view.Redirect(c, record.Role.ProfilePath())
		}
		return c.Next()
	}
}

func RedirectIfLoggedIn(c *fiber.Ctx) error {
	if record, ok := auth.Current(c); ok {
		fiberlog.Debug("logged in, redirecting to profile")
		return view.Redirect(c, record.Role.ProfilePath())
	}
	return c.Next()
}
