package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "endure/internal/platform/errors"
	"endure/internal/platform/logging"
	"endure/internal/platform/rest"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() (string, bool) { return s.token, s.token != "" }

type staticIDs struct{ id string }

func (s staticIDs) New() string { return s.id }

func newTestClient(url string, tokens rest.TokenSource) *rest.Client {
	return rest.NewClient(url, 5*time.Second, tokens, staticIDs{id: "req-1"}, logging.Discard())
}

func TestClientAttachesHeaders(t *testing.T) {
	t.Parallel()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticTokens{token: "tok-abc"})
	if err := c.Get(context.Background(), "/me", &struct{}{}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Get("Authorization") != "Bearer tok-abc" {
		t.Fatalf("bearer token not attached: %q", got.Get("Authorization"))
	}
	if got.Get("X-Request-ID") != "req-1" {
		t.Fatalf("request id not attached: %q", got.Get("X-Request-ID"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("accept header: %q", got.Get("Accept"))
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticTokens{})
	if err := c.Post(context.Background(), "/login", map[string]string{"email": "a@b.com"}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if auth != "" {
		t.Fatalf("pre-login request must go out unauthenticated, got %q", auth)
	}
}

func TestClientMapsUnauthorizedToAuthError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, staticTokens{token: "expired"}).Get(context.Background(), "/me", nil)
	var ae *apperrors.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Message != "Could not validate credentials" {
		t.Fatalf("server detail not preserved: %q", ae.Message)
	}
}

func TestClientMapsUnprocessableToValidationError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"Email already registered"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, staticTokens{}).Post(context.Background(), "/signup", map[string]string{}, nil)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Detail != "Email already registered" {
		t.Fatalf("detail must pass through verbatim: %q", ve.Detail)
	}
}

func TestClientPassesStructuredDetailThrough(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, staticTokens{}).Post(context.Background(), "/signup", map[string]string{}, nil)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Detail, "value is not a valid email address") {
		t.Fatalf("structured detail lost: %q", ve.Detail)
	}
}

func TestClientWrapsTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	err := newTestClient(srv.URL, staticTokens{}).Get(context.Background(), "/dashboard", nil)
	var ne *apperrors.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if ne.Op != "GET /dashboard" {
		t.Fatalf("operation not recorded: %q", ne.Op)
	}
}

func TestClientWrapsUnexpectedStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL, staticTokens{}).Get(context.Background(), "/dashboard", nil)
	var ne *apperrors.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
