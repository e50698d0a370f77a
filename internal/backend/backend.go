// Package backend talks to the service that owns accounts: the SkillBridge
// HTTP API or, alternatively, an AWS Cognito user pool.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/oops"

	"skillbridge/internal/form"
)

// Client issues exactly one request per call and never retries.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Register(ctx context.Context, reg form.Registration) error
	Profile(ctx context.Context, token string) (Profile, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

// Profile is what the backend knows about the signed-in account.
type Profile struct {
	Username                string
	Email                   string
	Role                    string
	FullName                string
	Location                string
	Skills                  []string
	OrganizationName        string
	OrganizationDescription string
	Website                 string
}

// ErrUnreachable marks failures where no response was received.
var ErrUnreachable = errors.New("backend unreachable")

// ErrMalformed marks a response that could not be decoded.
var ErrMalformed = errors.New("malformed backend response")

// RejectionError is a non-2xx answer from the backend.
type RejectionError struct {
	Status int
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request with status %d: %s", e.Status, e.Detail)
}

// ConnectivityMessage is shown when the backend could not be reached.
const ConnectivityMessage = "Failed to connect to the server. Please try again."

func rejected(status int, detail string) error {
	return oops.
		Code("BACKEND_REJECTED").
		With("status", status).
		Wrap(&RejectionError{Status: status, Detail: detail})
}

func unreachable(err error, op string) error {
	return oops.
		Code("BACKEND_UNREACHABLE").
		With("operation", op).
		Wrap(errors.Join(ErrUnreachable, err))
}

func malformed(err error, op string) error {
	return oops.
		Code("BACKEND_MALFORMED").
		With("operation", op).
		Wrap(errors.Join(ErrMalformed, err))
}

// IsRejection reports whether err is a backend answer rather than a
// transport problem.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// Message is the single line shown to the user for a failed submission. The
// backend's own detail wins; fallback covers rejections without one. An
// unreadable answer is reported like an unreachable backend.
func Message(err error, fallback string) string {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		if rej.Detail != "" {
			return rej.Detail
		}
		return fallback
	case errors.Is(err, ErrUnreachable), errors.Is(err, ErrMalformed):
		return ConnectivityMessage
	}
	return fallback
}

// Observer receives the outcome of every backend call.
type Observer interface {
	ObserveBackend(op string, elapsed time.Duration, err error)
}

// Observed wraps c so that o sees each call.
func Observed(c Client, o Observer) Client {
	return &observed{next: c, observer: o}
}

type observed struct {
	next     Client
	observer Observer
}

func (o *observed) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	start := time.Now()
	res, err := o.next.Login(ctx, req)
	o.observer.ObserveBackend("login", time.Since(start), err)
	return res, err
}

func (o *observed) Register(ctx context.Context, reg form.Registration) error {
	start := time.Now()
	err := o.next.Register(ctx, reg)
	o.observer.ObserveBackend("register", time.Since(start), err)
	return err
}

func (o *observed) Profile(ctx context.Context, token string) (Profile, error) {
	start := time.Now()
	p, err := o.next.Profile(ctx, token)
	o.observer.ObserveBackend("profile", time.Since(start), err)
	return p, err
}

func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
