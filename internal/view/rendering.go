package view

import (
	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

// RenderComponent writes component as the response body. Components see the
// request locals (CSRF token, session record) through the context.
func RenderComponent(c *fiber.Ctx, status int, component templ.Component) error {
	c.Status(status).Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Context(), c)
}

// Redirect sends a redirect that works for plain forms and htmx alike.
func Redirect(c *fiber.Ctx, location string) error {
	c.Set("HX-Location", location)
	return c.Redirect(location, fiber.StatusFound)
}
