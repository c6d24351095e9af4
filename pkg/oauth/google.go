package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type googleClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (c googleClaims) profile() *Profile {
	return &Profile{ID: c.Sub, Email: c.Email, FirstName: c.GivenName, LastName: c.FamilyName, Picture: c.Picture}
}

// GoogleVerifier accepts either an ID token for ClientID or an access token,
// which is resolved through the userinfo endpoint.
type GoogleVerifier struct {
	ClientID    string
	UserInfoURL string
	HTTPClient  *http.Client

	verifyIDToken func(token string, audience []string) error
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	v := googleAuthIDTokenVerifier.Verifier{}
	return &GoogleVerifier{
		ClientID:      clientID,
		UserInfoURL:   GoogleUserInfoURL,
		verifyIDToken: v.VerifyIDToken,
	}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	idErr := g.verifyIDToken(token, []string{g.ClientID})
	if idErr == nil {
		claims, err := decodeClaims(token)
		if err != nil {
			return nil, err
		}
		return claims.profile(), nil
	}

	var info googleClaims
	if err := getJSON(ctx, g.HTTPClient, g.UserInfoURL, token, &info); err != nil {
		return nil, fmt.Errorf("%w: id token: %v; access token: %v", ErrInvalidToken, idErr, err)
	}
	return info.profile(), nil
}

// decodeClaims reads the payload of an already verified JWT.
func decodeClaims(token string) (googleClaims, error) {
	var c googleClaims
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return c, errors.New("oauth: malformed id token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return c, fmt.Errorf("oauth: decode id token: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("oauth: decode id token: %w", err)
	}
	return c, nil
}
