package auth

import "strings"

// Role decides which profile fields apply to an account and where a signed-in
// user lands.
type Role string

const (
	RoleVolunteer Role = "Volunteer"
	RoleNGO       Role = "NGO"
)

// ngoLabel is how the API may echo the NGO role back after login.
const ngoLabel = "NGO / Organization"

const (
	VolunteerProfilePath = "/profile-volunteer"
	NGOProfilePath       = "/profile-ngo"
	LandingPath          = "/"
)

// ParseRole normalizes the role values accepted from forms and the API.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volunteer":
		return RoleVolunteer, true
	case "ngo", strings.ToLower(ngoLabel), "organization":
		return RoleNGO, true
	}
	return "", false
}

func (r Role) Label() string {
	if r == RoleNGO {
		return ngoLabel
	}
	return string(r)
}

// ProfilePath is the redirect target after authentication.
func (r Role) ProfilePath() string {
	switch r {
	case RoleVolunteer:
		return VolunteerProfilePath
	case RoleNGO:
		return NGOProfilePath
	}
	return LandingPath
}
