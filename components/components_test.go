package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/auth"
	"skillbridge/internal/constants"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestInputEscapesAndShowsError(t *testing.T) {
	html := render(t, context.Background(), Input(Field{
		Name: "username", Label: "Username", Value: `"><script>`, Required: true, Error: "Username is required",
	}))
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `aria-invalid="true"`)
	assert.Contains(t, html, "Username is required")
}

func TestLayoutWrapsChildren(t *testing.T) {
	html := render(t, templ.WithChildren(context.Background(), Notice("hello")), Layout("Sign in"))
	assert.Contains(t, html, "<title>Sign in | SkillBridge</title>")
	assert.Contains(t, html, `<main class="page"><div class="notice" role="status">hello</div></main>`)
}

func TestGuardedFormCarriesCsrfToken(t *testing.T) {
	ctx := context.WithValue(context.Background(), constants.CsrfTokenContextKey, "tok")
	html := render(t, templ.WithChildren(ctx, FormIDInput("f1")), GuardedForm("/login"))
	assert.Contains(t, html, `action="/login"`)
	assert.Contains(t, html, `name="_csrf" value="tok"`)
	assert.Contains(t, html, `name="form_id" value="f1"`)
}

func TestPasswordInputNeverEchoesValue(t *testing.T) {
	html := render(t, context.Background(), Input(Field{Name: "password", Type: "password", Value: "secret"}))
	assert.NotContains(t, html, "secret")
}

func TestCheckboxesMarkSelection(t *testing.T) {
	html := render(t, context.Background(), Checkboxes(Field{Name: "skills", Label: "Skills"},
		[]string{"A", "B"}, func(s string) bool { return s == "B" }))
	assert.Contains(t, html, `value="B" checked`)
	assert.NotContains(t, html, `value="A" checked`)
}

func TestNavFollowsSession(t *testing.T) {
	html := render(t, context.Background(), Nav())
	assert.Contains(t, html, `href="/login"`)

	ctx := context.WithValue(context.Background(), constants.SessionRecordKey, auth.Record{Username: "gef", Role: auth.RoleNGO})
	html = render(t, ctx, Nav())
	assert.Contains(t, html, `href="/profile-ngo"`)
	assert.Contains(t, html, "Logout")
}

func TestCsrfInput(t *testing.T) {
	assert.Empty(t, render(t, context.Background(), CsrfInput()))

	ctx := context.WithValue(context.Background(), constants.CsrfTokenContextKey, "tok")
	assert.Contains(t, render(t, ctx, CsrfInput()), `value="tok"`)
}

func TestAlertOnlyWithMessage(t *testing.T) {
	assert.Empty(t, render(t, context.Background(), Alert("")))
	assert.Contains(t, render(t, context.Background(), Alert("bad credentials")), "bad credentials")
}
