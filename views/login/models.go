package login

import (
	c "skillbridge/components"
	"skillbridge/internal/auth"
	"skillbridge/internal/form"
)

// LoginPage is what the login screen shows.
type LoginPage struct {
	Form    form.LoginForm
	Errors  form.Errors
	Message string
	Notice  string
}

func (p LoginPage) role() string {
	if p.Form.Role == "" {
		return "volunteer"
	}
	return p.Form.Role
}

func (p LoginPage) field(name, label, typ, value, placeholder string) c.Field {
	return c.Field{
		Name: name, Label: label, Type: typ, Value: value,
		Placeholder: placeholder, Required: true, Error: p.Errors.Get(name),
	}
}

var loginRoles = []c.Option{
	{Value: "volunteer", Label: "Volunteer"},
	{Value: "ngo", Label: "NGO"},
}

// RegisterPage is what the registration screen shows.
type RegisterPage struct {
	Form    form.RegistrationForm
	Errors  form.Errors
	Message string
	Rules   form.Ruleset
}

// role is the section shown first; an unknown role falls back to Volunteer.
func (p RegisterPage) role() auth.Role {
	if role, ok := p.Form.SelectedRole(); ok {
		return role
	}
	return auth.RoleVolunteer
}

func (p RegisterPage) field(name, label, typ, value, placeholder string, required bool) c.Field {
	return c.Field{
		Name: name, Label: label, Type: typ, Value: value,
		Placeholder: placeholder, Required: required, Error: p.Errors.Get(name),
	}
}

var registerRoles = []c.Option{
	{Value: string(auth.RoleVolunteer), Label: auth.RoleVolunteer.Label()},
	{Value: string(auth.RoleNGO), Label: auth.RoleNGO.Label()},
}
