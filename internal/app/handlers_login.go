package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"skillbridge/internal/auth"
	"skillbridge/internal/backend"
	"skillbridge/internal/form"
	"skillbridge/internal/metrics"
	"skillbridge/internal/submit"
	"skillbridge/internal/view"
	loginviews "skillbridge/views/login"
)

const (
	loginFailedMessage        = "Login failed. Please check your credentials."
	registrationFailedMessage = "Registration failed. Please try again."
	registeredNotice          = "Registration successful! Please sign in."
)

type LoginHandlers struct {
	sessions *auth.Manager
	backend  backend.Client
	forms    *submit.Registry
	metrics  *metrics.Metrics
	rules    form.Ruleset
}

func (l *LoginHandlers) LoginForm(c *fiber.Ctx) error {
	page := loginviews.LoginPage{Form: form.LoginForm{FormID: uuid.NewString()}}
	if c.Query("registered") != "" {
		page.Notice = registeredNotice
	}
	return view.RenderComponent(c, fiber.StatusOK, loginviews.Login(page))
}

func (l *LoginHandlers) SubmitLogin(c *fiber.Ctx) error {
	var f form.LoginForm
	if err := c.BodyParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var result backend.LoginResult
	res, err := l.forms.Submit(c.UserContext(), f.FormID,
		func() form.Errors { return form.ValidateLogin(f) },
		func(ctx context.Context) error {
			var err error
			result, err = l.backend.Login(ctx, backend.LoginRequest{
				Email:    strings.TrimSpace(f.Email),
				Password: f.Password,
			})
			return err
		},
	)
	if err != nil {
		return l.duplicate(c, "login", err)
	}
	l.metrics.CountSubmission("login", outcome(res))

	f.Password = ""
	switch res.State {
	case submit.Editing:
		return view.RenderComponent(c, fiber.StatusUnprocessableEntity,
			loginviews.Login(loginviews.LoginPage{Form: f, Errors: res.Errors}))
	case submit.Failed:
		return view.RenderComponent(c, failureStatus(res.Err),
			loginviews.Login(loginviews.LoginPage{Form: f, Message: backend.Message(res.Err, loginFailedMessage)}))
	}

	email := result.Email
	if email == "" {
		email = strings.TrimSpace(f.Email)
	}
	record := auth.NewRecord(email, result.Username, result.Role, result.AccessToken)
	if err := l.sessions.Save(c, record); err != nil {
		return err
	}

	fiberlog.Debug("signed in ", record.Email, " as ", record.Role)
	return view.Redirect(c, record.Role.ProfilePath())
}

func (l *LoginHandlers) Logout(c *fiber.Ctx) error {
	if err := l.sessions.Destroy(c); err != nil {
		return err
	}
	return view.Redirect(c, "/login")
}

func (l *LoginHandlers) Register(c *fiber.Ctx) error {
	page := loginviews.RegisterPage{
		Form:  form.RegistrationForm{Role: string(auth.RoleVolunteer), FormID: uuid.NewString()},
		Rules: l.rules,
	}
	return view.RenderComponent(c, fiber.StatusOK, loginviews.Register(page))
}

func (l *LoginHandlers) SubmitRegistration(c *fiber.Ctx) error {
	var f form.RegistrationForm
	if err := c.BodyParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := l.forms.Submit(c.UserContext(), f.FormID,
		func() form.Errors { return form.ValidateRegistration(f, l.rules) },
		func(ctx context.Context) error {
			return l.backend.Register(ctx, f.Registration())
		},
	)
	if err != nil {
		return l.duplicate(c, "register", err)
	}
	l.metrics.CountSubmission("register", outcome(res))

	page := loginviews.RegisterPage{Form: f.Cleared(), Rules: l.rules}
	switch res.State {
	case submit.Editing:
		page.Errors = res.Errors
		return view.RenderComponent(c, fiber.StatusUnprocessableEntity, loginviews.Register(page))
	case submit.Failed:
		page.Message = backend.Message(res.Err, registrationFailedMessage)
		return view.RenderComponent(c, failureStatus(res.Err), loginviews.Register(page))
	}

	fiberlog.Debug("registered ", f.Email)
	return view.Redirect(c, "/login?registered=1")
}

// duplicate answers a submit that arrived while the same form instance was
// still being submitted: it is ignored.
func (l *LoginHandlers) duplicate(c *fiber.Ctx, formName string, err error) error {
	if !errors.Is(err, submit.ErrInFlight) {
		return err
	}
	fiberlog.Debug("ignoring duplicate ", formName, " submission")
	l.metrics.CountSubmission(formName, "duplicate")
	c.Set("HX-Reswap", "none")
	return c.SendStatus(fiber.StatusNoContent)
}

func outcome(res submit.Result) string {
	switch res.State {
	case submit.Editing:
		return "invalid"
	case submit.Failed:
		if backend.IsRejection(res.Err) {
			return "rejected"
		}
		return "failed"
	}
	return res.State.String()
}

// failureStatus is the status of a re-rendered form after a failed send.
func failureStatus(err error) int {
	if backend.IsRejection(err) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusBadGateway
}
