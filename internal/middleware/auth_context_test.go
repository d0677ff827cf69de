package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-health-record/internal/ports/auth"
)

type stubVerifier struct {
	token string
}

func (s stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != s.token {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "u-verified", Email: "a@b.c"}, nil
}

func captureClaims(got *auth.Claims, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = GetClaims(r.Context())
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	var c auth.Claims
	var ok bool
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", " u1 ")

	AuthContext(nil, nil)(captureClaims(&c, &ok)).ServeHTTP(httptest.NewRecorder(), req)
	if !ok || c.UserID != "u1" {
		t.Fatalf("expected dev claims, got %#v ok=%v", c, ok)
	}
}

func TestAuthContext_Verifier(t *testing.T) {
	h := func(authz string) (auth.Claims, bool) {
		var c auth.Claims
		var ok bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Debug-User-ID", "ignored")
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		AuthContext(stubVerifier{token: "good"}, nil)(captureClaims(&c, &ok)).ServeHTTP(httptest.NewRecorder(), req)
		return c, ok
	}

	if c, ok := h("Bearer good"); !ok || c.UserID != "u-verified" {
		t.Fatalf("expected verified claims, got %#v", c)
	}
	if _, ok := h("Bearer bad"); ok {
		t.Fatalf("expected no claims for invalid token")
	}
	if _, ok := h(""); ok {
		t.Fatalf("debug header must be ignored when a verifier is set")
	}
}
