package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/form"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginSuccess(t *testing.T) {
	var got LoginRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, LoginPath, r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"email":"a@b.co","username":"ann","role":"Volunteer","access_token":"t","token_type":"bearer"}`)
	})

	res, err := NewAPI(srv.URL+"/").Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, LoginRequest{Email: "a@b.co", Password: "pw"}, got)
	assert.Equal(t, LoginResult{Email: "a@b.co", Username: "ann", Role: "Volunteer", AccessToken: "t"}, res)
}

func TestLoginRejected(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"bad credentials"}`)
	})

	_, err := NewAPI(srv.URL).Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.Error(t, err)
	assert.True(t, IsRejection(err))

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusUnauthorized, rej.Status)
	assert.Equal(t, "bad credentials", Message(err, "fallback"))
}

func TestRejectionWithoutDetailUsesFallback(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `oops`)
	})

	err := NewAPI(srv.URL).Register(context.Background(), form.Registration{Profile: form.VolunteerProfile{}})
	require.Error(t, err)
	assert.Equal(t, "Registration failed.", Message(err, "Registration failed."))
}

func TestValidationDetailList(t *testing.T) {
	body := []byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`)
	assert.Equal(t, "value is not a valid email address", decodeDetail(body))
	assert.Equal(t, "", decodeDetail([]byte(`{"detail":42}`)))
	assert.Equal(t, "", decodeDetail([]byte(`not json`)))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPI(url).Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
	assert.False(t, IsRejection(err))
	assert.Equal(t, ConnectivityMessage, Message(err, "fallback"))
}

func TestRegisterPayloadFollowsRole(t *testing.T) {
	var payloads []map[string]any
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RegisterPath, r.URL.Path)
		var p map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		_, _ = io.WriteString(w, `{"message":"User registered successfully"}`)
	})
	api := NewAPI(srv.URL)

	require.NoError(t, api.Register(context.Background(), form.Registration{
		Username: "ann", Email: "a@b.co", Password: "Abcdef1!", FullName: "Ann",
		Profile: form.VolunteerProfile{Location: "Lucknow", Skills: []string{"Marketing", "Fundraising"}},
	}))
	require.NoError(t, api.Register(context.Background(), form.Registration{
		Username: "gef", Email: "g@e.org", Password: "Abcdef1!", FullName: "Gef",
		Profile: form.NGOProfile{OrganizationName: "Green Earth", OrganizationDescription: "Trees"},
	}))
	require.Len(t, payloads, 2)

	volunteer := payloads[0]
	assert.Equal(t, "Volunteer", volunteer["role"])
	assert.Equal(t, "Ann", volunteer["full_name"])
	assert.Equal(t, "Marketing, Fundraising", volunteer["skills"])
	assert.Equal(t, "Lucknow", volunteer["location"])
	assert.NotContains(t, volunteer, "organization_name")

	ngo := payloads[1]
	assert.Equal(t, "NGO", ngo["role"])
	assert.Equal(t, "Green Earth", ngo["organization_name"])
	assert.Equal(t, "Trees", ngo["organization_description"])
	assert.NotContains(t, ngo, "skills")
	assert.NotContains(t, ngo, "website_url")
	assert.NotContains(t, ngo, "location")
}

func TestProfileSendsBearerToken(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ProfilePath, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"username":"ann","email":"a@b.co","role":"Volunteer","full_name":"Ann","skills":"Marketing, Photography"}`)
	})

	p, err := NewAPI(srv.URL).Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.FullName)
	assert.Equal(t, []string{"Marketing", "Photography"}, p.Skills)
}

func TestMalformedLoginResponse(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := NewAPI(srv.URL).Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Equal(t, ConnectivityMessage, Message(err, "fallback"))
}

type countingObserver struct {
	calls atomic.Int32
	last  error
}

func (o *countingObserver) ObserveBackend(_ string, _ time.Duration, err error) {
	o.calls.Add(1)
	o.last = err
}

func TestObserved(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Email already registered"}`)
	})
	o := &countingObserver{}
	c := Observed(NewAPI(srv.URL), o)

	err := c.Register(context.Background(), form.Registration{Profile: form.VolunteerProfile{}})
	require.Error(t, err)
	assert.EqualValues(t, 1, o.calls.Load())
	assert.Equal(t, err, o.last)
}
