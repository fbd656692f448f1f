/**
* Name: 			google.go
* Description: 		Google 로그인 (One Tap ID 토큰, OAuth 코드 교환)
* Workflow: 		ID 토큰 검증, 인증 URL 생성, code -> id_token 교환
 */

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var (
	ErrEmailNotVerified = errors.New("google email is not verified")
	ErrMissingIDToken   = errors.New("token response has no id_token")
)

// GoogleIdentity Google 계정에서 확인된 사용자 정보
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error)
}

type CodeExchanger interface {
	AuthCodeURL(state, redirectURI string) string
	Exchange(ctx context.Context, code, redirectURI string) (string, error)
}

type GoogleVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID, validate: idtoken.Validate}
}

// Verify checks signature, audience and expiry, then requires a verified email.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	payload, err := v.validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, fmt.Errorf("Verify(): invalid google token: %w", err)
	}
	ident := identityFromPayload(payload)
	if ident.Email == "" || !ident.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	return ident, nil
}

func identityFromPayload(p *idtoken.Payload) *GoogleIdentity {
	ident := &GoogleIdentity{Subject: p.Subject}
	if s, ok := p.Claims["email"].(string); ok {
		ident.Email = s
	}
	switch v := p.Claims["email_verified"].(type) {
	case bool:
		ident.EmailVerified = v
	case string:
		ident.EmailVerified = strings.EqualFold(v, "true")
	}
	if s, ok := p.Claims["name"].(string); ok {
		ident.Name = s
	}
	if s, ok := p.Claims["picture"].(string); ok {
		ident.Picture = s
	}
	return ident
}

// GoogleOAuth 서버 측 authorization code 플로우
type GoogleOAuth struct {
	cfg oauth2.Config
}

func NewGoogleOAuth(clientID, clientSecret, redirectURI string, scopes []string) *GoogleOAuth {
	return &GoogleOAuth{cfg: oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}}
}

func (g *GoogleOAuth) config(redirectURI string) *oauth2.Config {
	cfg := g.cfg
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}
	return &cfg
}

func (g *GoogleOAuth) AuthCodeURL(state, redirectURI string) string {
	return g.config(redirectURI).AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// Exchange returns the raw id_token issued alongside the access token.
func (g *GoogleOAuth) Exchange(ctx context.Context, code, redirectURI string) (string, error) {
	tok, err := g.config(redirectURI).Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("Exchange(): %w", err)
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return "", ErrMissingIDToken
	}
	return raw, nil
}
