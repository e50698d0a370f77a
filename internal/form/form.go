// Package form holds the login and registration form state, its validation
// and the conversion of a valid registration into the role-specific shape
// sent to the API.
package form

import (
	"strings"

	"skillbridge/internal/auth"
)

// Field names, shared by the HTML inputs and the Errors keys.
const (
	FieldUsername                = "username"
	FieldEmail                   = "email"
	FieldPassword                = "password"
	FieldConfirmPassword         = "confirmPassword"
	FieldFullName                = "fullName"
	FieldRole                    = "role"
	FieldLocation                = "location"
	FieldSkills                  = "skills"
	FieldOrganizationName        = "organizationName"
	FieldOrganizationDescription = "organizationDescription"
	FieldWebsite                 = "website"
)

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
	FormID   string `form:"form_id"`
}

// RegistrationForm is the raw registration input as posted by the browser.
type RegistrationForm struct {
	Username                string   `form:"username"`
	Email                   string   `form:"email"`
	Password                string   `form:"password"`
	ConfirmPassword         string   `form:"confirmPassword"`
	FullName                string   `form:"fullName"`
	Role                    string   `form:"role"`
	Location                string   `form:"location"`
	Skills                  []string `form:"skills"`
	OrganizationName        string   `form:"organizationName"`
	OrganizationDescription string   `form:"organizationDescription"`
	Website                 string   `form:"website"`
	FormID                  string   `form:"form_id"`
}

// SelectedRole is the role the form currently targets. An empty role means
// the default, Volunteer.
func (f RegistrationForm) SelectedRole() (auth.Role, bool) {
	if strings.TrimSpace(f.Role) == "" {
		return auth.RoleVolunteer, true
	}
	return auth.ParseRole(f.Role)
}

// HasSkill reports whether skill is selected.
func (f RegistrationForm) HasSkill(skill string) bool {
	for _, s := range f.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Cleared returns a copy without the secrets, for re-rendering the form.
func (f RegistrationForm) Cleared() RegistrationForm {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}

// Profile is the role-specific part of a Registration.
type Profile interface {
	Role() auth.Role
}

type VolunteerProfile struct {
	Location string
	Skills   []string
}

func (VolunteerProfile) Role() auth.Role { return auth.RoleVolunteer }

type NGOProfile struct {
	Location                string
	OrganizationName        string
	OrganizationDescription string
	Website                 string
}

func (NGOProfile) Role() auth.Role { return auth.RoleNGO }

// Registration is a validated RegistrationForm. Fields that do not apply to
// the chosen role are not carried.
type Registration struct {
	Username string
	Email    string
	Password string
	FullName string
	Profile  Profile
}

func (r Registration) Role() auth.Role {
	return r.Profile.Role()
}

// Registration converts the form. It must only be called on a form that
// validated without errors.
func (f RegistrationForm) Registration() Registration {
	role, _ := f.SelectedRole()

	reg := Registration{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		FullName: strings.TrimSpace(f.FullName),
	}

	location := strings.TrimSpace(f.Location)
	if role == auth.RoleNGO {
		reg.Profile = NGOProfile{
			Location:                location,
			OrganizationName:        strings.TrimSpace(f.OrganizationName),
			OrganizationDescription: strings.TrimSpace(f.OrganizationDescription),
			Website:                 strings.TrimSpace(f.Website),
		}
	} else {
		reg.Profile = VolunteerProfile{
			Location: location,
			Skills:   NormalizeSkills(f.Skills),
		}
	}
	return reg
}
