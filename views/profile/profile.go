package profile

import "skillbridge/internal/auth"

// Details is what the profile screen shows about an account.
type Details struct {
	Username                string
	Email                   string
	Role                    auth.Role
	FullName                string
	Location                string
	Skills                  []string
	OrganizationName        string
	OrganizationDescription string
	Website                 string
	// Partial is set when only the session data was available.
	Partial bool
}

func (d Details) displayName() string {
	if d.FullName != "" {
		return d.FullName
	}
	return d.Username
}
