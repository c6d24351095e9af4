// Package oauth resolves social sign-in tokens into profile data.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

var ErrInvalidToken = errors.New("oauth: invalid token")

type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Profile, error)
}

// getJSON calls url with token as a bearer credential and decodes the body into out.
func getJSON(ctx context.Context, base *http.Client, url, token string, out interface{}) error {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrInvalidToken, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
