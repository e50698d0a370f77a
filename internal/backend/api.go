package backend

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"skillbridge/internal/form"
)

const (
	LoginPath    = "/api/user/login"
	RegisterPath = "/api/user/register"
	ProfilePath  = "/api/profile/me"
)

// API is the SkillBridge HTTP API client. Requests have no timeout.
type API struct {
	baseURL string
	client  *fiber.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fiber.Client{
			UserAgent:   "skillbridge-web",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

type registerPayload struct {
	Username                string  `json:"username"`
	Email                   string  `json:"email"`
	Password                string  `json:"password"`
	FullName                string  `json:"full_name"`
	Role                    string  `json:"role"`
	Location                *string `json:"location,omitempty"`
	Skills                  *string `json:"skills,omitempty"`
	OrganizationName        *string `json:"organization_name,omitempty"`
	OrganizationDescription *string `json:"organization_description,omitempty"`
	WebsiteURL              *string `json:"website_url,omitempty"`
}

type profilePayload struct {
	Username                string `json:"username"`
	Email                   string `json:"email"`
	Role                    string `json:"role"`
	FullName                string `json:"full_name"`
	Location                string `json:"location"`
	Skills                  string `json:"skills"`
	OrganizationName        string `json:"organization_name"`
	OrganizationDescription string `json:"organization_description"`
	WebsiteURL              string `json:"website_url"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newRegisterPayload(reg form.Registration) registerPayload {
	p := registerPayload{
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
		FullName: reg.FullName,
		Role:     string(reg.Role()),
	}

	switch profile := reg.Profile.(type) {
	case form.VolunteerProfile:
		p.Location = optional(profile.Location)
		p.Skills = optional(strings.Join(profile.Skills, ", "))
	case form.NGOProfile:
		p.Location = optional(profile.Location)
		p.OrganizationName = optional(profile.OrganizationName)
		p.OrganizationDescription = optional(profile.OrganizationDescription)
		p.WebsiteURL = optional(profile.Website)
	}
	return p
}

func (a *API) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	var res LoginResult
	body, err := a.do(ctx, "login", a.client.Post(a.baseURL+LoginPath).JSON(req))
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return res, malformed(err, "login")
	}
	return res, nil
}

func (a *API) Register(ctx context.Context, reg form.Registration) error {
	_, err := a.do(ctx, "register", a.client.Post(a.baseURL+RegisterPath).JSON(newRegisterPayload(reg)))
	return err
}

func (a *API) Profile(ctx context.Context, token string) (Profile, error) {
	agent := a.client.Get(a.baseURL + ProfilePath)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)

	body, err := a.do(ctx, "profile", agent)
	if err != nil {
		return Profile{}, err
	}

	var p profilePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return Profile{}, malformed(err, "profile")
	}
	return Profile{
		Username:                p.Username,
		Email:                   p.Email,
		Role:                    p.Role,
		FullName:                p.FullName,
		Location:                p.Location,
		Skills:                  splitSkills(p.Skills),
		OrganizationName:        p.OrganizationName,
		OrganizationDescription: p.OrganizationDescription,
		Website:                 p.WebsiteURL,
	}, nil
}

// do sends the request held by agent and returns the body of a 2xx answer.
func (a *API) do(ctx context.Context, op string, agent *fiber.Agent) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, unreachable(err, op)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		fiberlog.Error("backend ", op, " failed: ", errors.Join(errs...))
		return nil, unreachable(errors.Join(errs...), op)
	}

	if code < 200 || code > 299 {
		detail := decodeDetail(body)
		fiberlog.Debug("backend ", op, " rejected with ", code, ": ", detail)
		return nil, rejected(code, detail)
	}

	return body, nil
}

// decodeDetail extracts the error text from a FastAPI style body. The detail
// is either a string or a list of validation entries carrying "msg".
func decodeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &entries); err == nil {
		for _, e := range entries {
			if e.Msg != "" {
				return e.Msg
			}
		}
	}
	return ""
}
