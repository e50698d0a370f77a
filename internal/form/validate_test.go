package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/auth"
)

func validVolunteer() RegistrationForm {
	return RegistrationForm{
		Username:        "ann42",
		Email:           "ann@example.org",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		FullName:        "Ann Example",
		Role:            "Volunteer",
	}
}

func validNGO() RegistrationForm {
	f := validVolunteer()
	f.Role = "NGO"
	f.OrganizationName = "Green Earth"
	f.OrganizationDescription = "Trees."
	return f
}

func TestValidRegistrations(t *testing.T) {
	assert.Empty(t, ValidateRegistration(validVolunteer(), Strict))
	assert.Empty(t, ValidateRegistration(validNGO(), Strict))
	assert.Empty(t, ValidateRegistration(validNGO(), Loose))
}

func TestNGORequiresOrganization(t *testing.T) {
	f := validNGO()
	f.OrganizationName = "  "
	f.OrganizationDescription = ""

	for _, rules := range []Ruleset{Strict, Loose} {
		errs := ValidateRegistration(f, rules)
		assert.Equal(t, "Organization Name is required", errs.Get(FieldOrganizationName))
		assert.Equal(t, "Organization Description is required", errs.Get(FieldOrganizationDescription))
		assert.Len(t, errs, 2)
	}
}

func TestVolunteerDoesNotNeedOrganization(t *testing.T) {
	f := validVolunteer()
	f.OrganizationName = ""
	errs := ValidateRegistration(f, Strict)
	assert.False(t, errs.Has(FieldOrganizationName))
	assert.False(t, errs.Has(FieldOrganizationDescription))
}

func TestPasswordRules(t *testing.T) {
	cases := []struct {
		password string
		rules    Ruleset
		want     string
	}{
		{"", Strict, "Password is required"},
		{"abc", Strict, "Password must be at least 6 characters"},
		{"abc", Loose, "Password must be at least 6 characters"},
		{"AÉÉ1!", Strict, "Password must be at least 6 characters"},
		{"ééé", Loose, "Password must be at least 6 characters"},
		{"Aéééé1!", Strict, ""},
		{"abcdef", Strict, "Password must contain at least one uppercase letter"},
		{"Abcdef", Strict, "Password must contain at least one number"},
		{"Abcdef1", Strict, "Password must contain at least one special character"},
		{"Abcdef1!", Strict, ""},
		{"abcdef", Loose, ""},
	}
	for _, tc := range cases {
		f := validVolunteer()
		f.Password = tc.password
		f.ConfirmPassword = tc.password
		errs := ValidateRegistration(f, tc.rules)
		assert.Equal(t, tc.want, errs.Get(FieldPassword), "%q under %s", tc.password, tc.rules)
	}
}

func TestConfirmPasswordMismatch(t *testing.T) {
	f := validVolunteer()
	f.ConfirmPassword = "Abcdef1?"

	errs := ValidateRegistration(f, Strict)
	require.Len(t, errs, 1)
	assert.Equal(t, "Passwords do not match", errs.Get(FieldConfirmPassword))

	assert.Empty(t, ValidateRegistration(f, Loose))
}

func TestUsernameRules(t *testing.T) {
	f := validVolunteer()
	f.Username = "ann_42"
	assert.Equal(t, "Username must contain only letters and numbers", ValidateRegistration(f, Strict).Get(FieldUsername))
	assert.False(t, ValidateRegistration(f, Loose).Has(FieldUsername))

	f.Username = "   "
	assert.Equal(t, "Username is required", ValidateRegistration(f, Loose).Get(FieldUsername))
}

func TestEmptyFormReportsEveryField(t *testing.T) {
	errs := ValidateRegistration(RegistrationForm{}, Strict)
	for _, field := range []string{FieldUsername, FieldEmail, FieldPassword, FieldConfirmPassword, FieldFullName} {
		assert.True(t, errs.Has(field), field)
	}
	assert.False(t, errs.Has(FieldRole))
}

func TestEmailAndRoleAndWebsite(t *testing.T) {
	f := validNGO()
	f.Email = "not-an-email"
	f.Website = "example.org"
	errs := ValidateRegistration(f, Strict)
	assert.Equal(t, "Email is invalid", errs.Get(FieldEmail))
	assert.Equal(t, "Website must be a full http(s) URL", errs.Get(FieldWebsite))

	f = validVolunteer()
	f.Role = "Admin"
	assert.True(t, ValidateRegistration(f, Strict).Has(FieldRole))
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin(LoginForm{})
	assert.Equal(t, "Email is required", errs.Get(FieldEmail))
	assert.Equal(t, "Password is required", errs.Get(FieldPassword))

	errs = ValidateLogin(LoginForm{Email: "a@b", Password: "x"})
	assert.Equal(t, "Email is invalid", errs.Get(FieldEmail))

	assert.True(t, ValidateLogin(LoginForm{Email: "a@b.co", Password: "x"}).Empty())
}

func TestParseRuleset(t *testing.T) {
	r, err := ParseRuleset("")
	require.NoError(t, err)
	assert.Equal(t, Strict, r)

	r, err = ParseRuleset("LOOSE")
	require.NoError(t, err)
	assert.Equal(t, Loose, r)

	_, err = ParseRuleset("lenient")
	assert.Error(t, err)
}

func TestRegistrationUnion(t *testing.T) {
	f := validVolunteer()
	f.Location = " Lucknow "
	f.Skills = []string{"Marketing", "Bogus", "Web Development", "Marketing"}
	f.OrganizationName = "ignored"

	reg := f.Registration()
	assert.Equal(t, auth.RoleVolunteer, reg.Role())
	vp, ok := reg.Profile.(VolunteerProfile)
	require.True(t, ok)
	assert.Equal(t, "Lucknow", vp.Location)
	assert.Equal(t, []string{"Web Development", "Marketing"}, vp.Skills)

	f = validNGO()
	f.Skills = []string{"Marketing"}
	f.Website = "https://green.example"
	reg = f.Registration()
	np, ok := reg.Profile.(NGOProfile)
	require.True(t, ok)
	assert.Equal(t, "Green Earth", np.OrganizationName)
	assert.Equal(t, "https://green.example", np.Website)

	f = validVolunteer()
	f.Role = ""
	assert.Equal(t, auth.RoleVolunteer, f.Registration().Role())
}
