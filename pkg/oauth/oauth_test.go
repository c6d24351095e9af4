package oauth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeIDToken(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"RS256"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestGoogleVerifierIDToken(t *testing.T) {
	g := NewGoogleVerifier("client-1")
	var gotAud []string
	g.verifyIDToken = func(token string, aud []string) error {
		gotAud = aud
		return nil
	}

	tok := fakeIDToken(`{"sub":"g-1","email":"a@x.com","given_name":"Ravi","family_name":"Kumar","picture":"https://p/x.png"}`)
	p, err := g.Verify(context.Background(), tok)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotAud) != 1 || gotAud[0] != "client-1" {
		t.Errorf("audience: got %v", gotAud)
	}
	if p.ID != "g-1" || p.Email != "a@x.com" || p.FirstName != "Ravi" || p.LastName != "Kumar" {
		t.Errorf("profile: got %+v", p)
	}
}

func TestGoogleVerifierFallsBackToUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"sub":"g-2","email":"b@x.com","given_name":"Sita"}`)
	}))
	defer srv.Close()

	g := NewGoogleVerifier("client-1")
	g.UserInfoURL = srv.URL
	g.verifyIDToken = func(string, []string) error { return errors.New("not a jwt") }

	p, err := g.Verify(context.Background(), "access-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Email != "b@x.com" || p.FirstName != "Sita" {
		t.Errorf("profile: got %+v", p)
	}

	if _, err := g.Verify(context.Background(), "wrong"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestFacebookVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" || r.URL.Query().Get("fields") != "id,email,first_name,last_name,picture" {
			t.Errorf("unexpected request %s", r.URL)
		}
		fmt.Fprint(w, `{"id":"fb-1","email":"c@x.com","first_name":"Lakshmi","last_name":"Rao","picture":{"data":{"url":"https://fb/p.jpg"}}}`)
	}))
	defer srv.Close()

	p, err := NewFacebookVerifier(srv.URL+"/").Verify(context.Background(), "fb-token")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "fb-1" || p.Picture != "https://fb/p.jpg" || p.LastName != "Rao" {
		t.Errorf("profile: got %+v", p)
	}

	if _, err := NewFacebookVerifier(srv.URL).Verify(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token: got %v", err)
	}
}
