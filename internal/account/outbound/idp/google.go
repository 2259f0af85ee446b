// Package idp talks to external identity providers for social login.
package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// ErrNoEmail indicates the provider returned a profile without an email.
var ErrNoEmail = errors.New("idp: provider profile has no email")

// Google exchanges OAuth authorization codes and fetches the user profile.
type Google struct {
	oauth  *oauth2.Config
	client *http.Client
	ins    instrument.Instrumentation
}

// GoogleOptions configures the OAuth client.
type GoogleOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGoogle(opts GoogleOptions, ins instrument.Instrumentation) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client: &http.Client{Timeout: 10 * time.Second},
		ins:    ins,
	}
}

// ExchangeGoogle swaps the authorization code for tokens and reads the
// userinfo endpoint.
func (g *Google) ExchangeGoogle(ctx context.Context, code string) (_ *usecase.GoogleProfile, err error) {
	ctx, span := g.ins.Tracer("account.outbound.idp").Start(ctx, "ExchangeGoogle")
	defer span.End()

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	if payload.Email == "" || !payload.EmailVerified {
		return nil, ErrNoEmail
	}

	return &usecase.GoogleProfile{
		Subject:  payload.Sub,
		Email:    payload.Email,
		FullName: payload.Name,
	}, nil
}
