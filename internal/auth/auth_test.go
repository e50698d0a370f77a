package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"Volunteer":          RoleVolunteer,
		"volunteer":          RoleVolunteer,
		"NGO":                RoleNGO,
		"ngo":                RoleNGO,
		"NGO / Organization": RoleNGO,
	}
	for in, want := range cases {
		got, ok := ParseRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseRole("admin")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestProfilePath(t *testing.T) {
	assert.Equal(t, "/profile-volunteer", RoleVolunteer.ProfilePath())
	assert.Equal(t, "/profile-ngo", RoleNGO.ProfilePath())
	assert.Equal(t, "/", Role("Admin").ProfilePath())
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	at := time.Unix(1_900_000_000, 0)

	legacy := signed(t, jwt.MapClaims{"user_id": "a@b.co", "role": "Volunteer", "expires": float64(at.Unix())})
	assert.True(t, at.Equal(TokenExpiry(legacy)))

	registered := signed(t, jwt.MapClaims{"exp": at.Unix()})
	assert.True(t, at.Equal(TokenExpiry(registered)))

	assert.True(t, TokenExpiry("opaque").IsZero())
	assert.True(t, TokenExpiry("").IsZero())
}

func TestNewRecordNormalizesRole(t *testing.T) {
	r := NewRecord("a@b.co", "ann", "NGO / Organization", "t")
	assert.Equal(t, RoleNGO, r.Role)
	assert.True(t, r.ExpiresAt.IsZero())
	assert.False(t, r.Expired(time.Now()))

	r = NewRecord("a@b.co", "ann", "Mentor", "t")
	assert.Equal(t, Role("Mentor"), r.Role)
}

func newManagerApp(m *Manager, rec Record) *fiber.App {
	app := fiber.New()
	app.Post("/save", func(c *fiber.Ctx) error {
		return m.Save(c, rec)
	})
	app.Get("/load", func(c *fiber.Ctx) error {
		r, ok, err := m.Load(c)
		if err != nil {
			return err
		}
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(r.Username + ":" + string(r.Role))
	})
	app.Post("/destroy", func(c *fiber.Ctx) error {
		return m.Destroy(c)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager(session.New())
	app := newManagerApp(m, NewRecord("a@b.co", "ann", "Volunteer", "t"))

	resp := do(t, app, "GET", "/load", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, "POST", "/save", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = do(t, app, "GET", "/load", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ann:Volunteer", string(body))

	resp = do(t, app, "POST", "/destroy", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "GET", "/load", cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestManagerDropsExpiredRecord(t *testing.T) {
	m := NewManager(session.New())
	token := signed(t, jwt.MapClaims{"expires": float64(time.Now().Add(time.Hour).Unix())})
	app := newManagerApp(m, NewRecord("a@b.co", "ann", "NGO", token))

	resp := do(t, app, "POST", "/save", nil)
	cookies := resp.Cookies()

	resp = do(t, app, "GET", "/load", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	resp = do(t, app, "GET", "/load", cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
