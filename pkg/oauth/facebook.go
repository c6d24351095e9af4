package oauth

import (
	"context"
	"net/http"
	"strings"
)

const FacebookGraphURL = "https://graph.facebook.com"

type FacebookVerifier struct {
	GraphURL   string
	HTTPClient *http.Client
}

func NewFacebookVerifier(graphURL string) *FacebookVerifier {
	if graphURL == "" {
		graphURL = FacebookGraphURL
	}
	return &FacebookVerifier{GraphURL: strings.TrimRight(graphURL, "/")}
}

type facebookMe struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (f *FacebookVerifier) Verify(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var me facebookMe
	url := f.GraphURL + "/me?fields=id,email,first_name,last_name,picture"
	if err := getJSON(ctx, f.HTTPClient, url, token, &me); err != nil {
		return nil, err
	}
	return &Profile{
		ID:        me.ID,
		Email:     me.Email,
		FirstName: me.FirstName,
		LastName:  me.LastName,
		Picture:   me.Picture.Data.URL,
	}, nil
}
