package app

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"skillbridge/internal/auth"
	"skillbridge/internal/backend"
	"skillbridge/internal/view"
	landingviews "skillbridge/views/landing"
	profileviews "skillbridge/views/profile"
)

func Landing(c *fiber.Ctx) error {
	return view.RenderComponent(c, fiber.StatusOK, landingviews.Landing())
}

type ProfileHandlers struct {
	sessions *auth.Manager
	backend  backend.Client
}

// Show renders the signed-in user's profile. The session record is enough
// to render the page; the backend profile adds to it when available.
func (p *ProfileHandlers) Show(c *fiber.Ctx) error {
	record, _ := auth.Current(c)

	details := profileviews.Details{
		Username: record.Username,
		Email:    record.Email,
		Role:     record.Role,
	}

	prof, err := p.backend.Profile(c.UserContext(), record.Token)
	var rej *backend.RejectionError
	switch {
	case err == nil:
		merge(&details, prof)
	case errors.As(err, &rej) && rej.Status == http.StatusUnauthorized:
		fiberlog.Debug("token rejected, signing out ", record.Email)
		if err := p.sessions.Destroy(c); err != nil {
			return err
		}
		return view.Redirect(c, "/login")
	case errors.As(err, &rej):
		fiberlog.Debug("no backend profile for ", record.Email, ": ", rej.Status)
	default:
		fiberlog.Error("profile lookup failed: ", err)
		details.Partial = true
	}

	return view.RenderComponent(c, fiber.StatusOK, profileviews.Profile(details))
}

func merge(d *profileviews.Details, p backend.Profile) {
	if p.Username != "" {
		d.Username = p.Username
	}
	if p.Email != "" {
		d.Email = p.Email
	}
	d.FullName = p.FullName
	d.Location = p.Location
	d.Skills = p.Skills
	d.OrganizationName = p.OrganizationName
	d.OrganizationDescription = p.OrganizationDescription
	d.Website = p.Website
}
