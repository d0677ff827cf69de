package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"pet-health-record/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("oidc verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
)

type Config struct {
	IssuerURL string
	ClientID  string
}

// Verifier implementa auth.AuthVerifier validando ID tokens contra el
// discovery + JWKS del issuer.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

// NewVerifier hace discovery del issuer (request HTTP, usa ctx).
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	issuer := strings.TrimSpace(cfg.IssuerURL)
	if issuer == "" {
		return nil, ErrNotConfigured
	}
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return newVerifier(provider.Verifier(verifierConfig(cfg))), nil
}

func verifierConfig(cfg Config) *gooidc.Config {
	clientID := strings.TrimSpace(cfg.ClientID)
	return &gooidc.Config{
		ClientID:          clientID,
		SkipClientIDCheck: clientID == "",
	}
}

func newVerifier(v *gooidc.IDTokenVerifier) *Verifier {
	return &Verifier{verifier: v}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.verifier == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("oidc verify failed: %w", err)
	}

	var extra struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&extra); err != nil {
		return auth.Claims{}, fmt.Errorf("oidc claims: %w", err)
	}

	claims := auth.Claims{
		UserID: strings.TrimSpace(idToken.Subject),
		Email:  strings.TrimSpace(extra.Email),
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("oidc token missing subject")
	}
	return claims, nil
}
