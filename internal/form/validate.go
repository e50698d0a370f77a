package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"skillbridge/internal/auth"
)

// Errors maps a field name to the message shown next to it. A validation pass
// always builds a new Errors value.
type Errors map[string]string

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Ruleset selects how strict registration validation is.
type Ruleset string

const (
	// Strict requires an alphanumeric username, a password with an uppercase
	// letter, a digit and a symbol, and a matching confirmation.
	Strict Ruleset = "strict"
	// Loose only requires a username and a six character password.
	Loose Ruleset = "loose"
)

func ParseRuleset(s string) (Ruleset, error) {
	switch Ruleset(strings.ToLower(strings.TrimSpace(s))) {
	case Strict, "":
		return Strict, nil
	case Loose:
		return Loose, nil
	}
	return "", fmt.Errorf("unknown validation ruleset %q", s)
}

const MinPasswordLength = 6

// PasswordSymbols are the symbols the strict ruleset accepts.
const PasswordSymbols = "!@#$%^&*"

var (
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	symbolRegex    = regexp.MustCompile(`[` + regexp.QuoteMeta(PasswordSymbols) + `]`)
)

// ValidateRegistration checks every field of f independently.
func ValidateRegistration(f RegistrationForm, rules Ruleset) Errors {
	errs := Errors{}

	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		errs[FieldUsername] = "Username is required"
	case rules == Strict && !usernameRegex.MatchString(f.Username):
		errs[FieldUsername] = "Username must contain only letters and numbers"
	}

	if msg := checkEmail(f.Email); msg != "" {
		errs[FieldEmail] = msg
	}

	if msg := checkPassword(f.Password, rules); msg != "" {
		errs[FieldPassword] = msg
	}

	if rules == Strict {
		switch {
		case f.ConfirmPassword == "":
			errs[FieldConfirmPassword] = "Please confirm your password"
		case f.ConfirmPassword != f.Password:
			errs[FieldConfirmPassword] = "Passwords do not match"
		}
	}

	if strings.TrimSpace(f.FullName) == "" {
		errs[FieldFullName] = "Full Name is required"
	}

	role, ok := f.SelectedRole()
	if !ok {
		errs[FieldRole] = "Please choose Volunteer or NGO"
	}

	if role == auth.RoleNGO {
		if strings.TrimSpace(f.OrganizationName) == "" {
			errs[FieldOrganizationName] = "Organization Name is required"
		}
		if strings.TrimSpace(f.OrganizationDescription) == "" {
			errs[FieldOrganizationDescription] = "Organization Description is required"
		}
		if website := strings.TrimSpace(f.Website); website != "" && !validWebsite(website) {
			errs[FieldWebsite] = "Website must be a full http(s) URL"
		}
	}

	return errs
}

// ValidateLogin checks the login form.
func ValidateLogin(f LoginForm) Errors {
	errs := Errors{}
	if msg := checkEmail(f.Email); msg != "" {
		errs[FieldEmail] = msg
	}
	if f.Password == "" {
		errs[FieldPassword] = "Password is required"
	}
	return errs
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return "Email is invalid"
	}
	return ""
}

func checkPassword(password string, rules Ruleset) string {
	switch {
	case password == "":
		return "Password is required"
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	case rules != Strict:
		return ""
	case !uppercaseRegex.MatchString(password):
		return "Password must contain at least one uppercase letter"
	case !digitRegex.MatchString(password):
		return "Password must contain at least one number"
	case !symbolRegex.MatchString(password):
		return "Password must contain at least one special character"
	}
	return ""
}

func validWebsite(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
