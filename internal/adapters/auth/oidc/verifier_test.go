package oidc

import (
	"context"
	"errors"
	"testing"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
)

func TestNewVerifier_RequiresIssuer(t *testing.T) {
	if _, err := NewVerifier(context.Background(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestVerify_NilVerifier(t *testing.T) {
	var v *Verifier
	if _, err := v.Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestVerify_EmptyAndMalformedToken(t *testing.T) {
	keys := &gooidc.StaticKeySet{}
	v := newVerifier(gooidc.NewVerifier("https://issuer.test", keys, verifierConfig(Config{ClientID: "pet-health"})))

	if _, err := v.Verify(context.Background(), "   "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestVerifierConfig_SkipsClientIDWhenEmpty(t *testing.T) {
	if c := verifierConfig(Config{}); !c.SkipClientIDCheck {
		t.Fatalf("expected SkipClientIDCheck without client id")
	}
	if c := verifierConfig(Config{ClientID: " app "}); c.SkipClientIDCheck || c.ClientID != "app" {
		t.Fatalf("unexpected config %#v", c)
	}
}
