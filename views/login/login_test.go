package login

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/form"
)

func TestRegisterShowsSelectedRoleSection(t *testing.T) {
	var buf bytes.Buffer
	err := Register(RegisterPage{
		Form:   form.RegistrationForm{Role: "NGO", OrganizationName: "Green Earth", FormID: "f1"},
		Errors: form.Errors{form.FieldOrganizationDescription: "Organization Description is required"},
		Rules:  form.Strict,
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `data-role="Volunteer" hidden`)
	assert.NotContains(t, html, `data-role="NGO" hidden`)
	assert.Contains(t, html, `value="Green Earth"`)
	assert.Contains(t, html, "Organization Description is required")
	assert.Contains(t, html, `name="confirmPassword"`)
	assert.Contains(t, html, `value="f1"`)
}

func TestLooseRegisterHasNoConfirmation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Register(RegisterPage{Rules: form.Loose}).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), `name="confirmPassword"`)
}

func TestLoginShowsMessageAndNotice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Login(LoginPage{Message: "bad credentials", Notice: "Registration successful!"}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "bad credentials")
	assert.Contains(t, buf.String(), "Registration successful!")
}
