package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"go.uber.org/zap"
)

type stubTokens map[string]uint

func (s stubTokens) ValidateToken(token string) (uint, error) {
	id, ok := s[token]
	if !ok {
		return 0, errors.New("bad token")
	}
	return id, nil
}

type stubAccounts map[uint]*models.Account

func (s stubAccounts) Get(ctx context.Context, id uint, preloads ...string) (*models.Account, error) {
	a, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func decode(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	var body models.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func newAuthApp() *fiber.App {
	tokens := stubTokens{"member": 1, "admin": 2, "ghost": 9}
	accounts := stubAccounts{
		1: {ID: 1, Type: models.AccountMember},
		2: {ID: 2, Type: models.AccountAdmin},
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop(), false)})
	app.Use(Context())
	auth := Auth(tokens, accounts, zap.NewNop())
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/me", auth, ok)
	app.Get("/admin", auth, Admin(), ok)
	app.Get("/members/:id", auth, SelfOrAdmin("id"), ok)
	app.Use(NotFound)
	return app
}

func TestAuthChain(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		token  string
		status int
		msg    string
	}{
		{"no header", "/me", "", http.StatusUnauthorized, "Authentication required. Please provide a valid token."},
		{"bad token", "/me", "nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"deleted account", "/me", "ghost", http.StatusUnauthorized, "User not found. Token may be invalid."},
		{"member", "/me", "member", http.StatusOK, ""},
		{"member on admin route", "/admin", "member", http.StatusForbidden, "Access denied. Admin privileges required."},
		{"admin", "/admin", "admin", http.StatusOK, ""},
		{"own record", "/members/1", "member", http.StatusOK, ""},
		{"other record", "/members/2", "member", http.StatusForbidden, "Access denied"},
		{"admin on other record", "/members/1", "admin", http.StatusOK, ""},
		{"unknown route", "/nowhere", "", http.StatusNotFound, "Page not found"},
	}
	app := newAuthApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.msg != "" {
				if body := decode(t, resp); body.Message != tt.msg || body.Status {
					t.Errorf("body: got %+v, want message %q", body, tt.msg)
				}
			}
		})
	}
}

func TestErrorHandlerHidesCause(t *testing.T) {
	for _, dev := range []bool{false, true} {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop(), dev)})
		app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("dial tcp: connection refused") })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", resp.StatusCode)
		}
		body := decode(t, resp)
		if body.Message != "Internal Server Error" {
			t.Errorf("message: got %q", body.Message)
		}
		if leaked := body.Errors != nil; leaked != dev {
			t.Errorf("dev=%v: cause exposed = %v", dev, leaked)
		}
	}
}

type memStorage struct {
	stored  map[string]string
	deleted []string
}

func (m *memStorage) ObjectName(filename string) string { return "x-" + filename }

func (m *memStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.stored[key] = string(b)
	return "http://localhost/uploads/" + key, nil
}

func (m *memStorage) Delete(ctx context.Context, u string) error {
	m.deleted = append(m.deleted, u)
	return nil
}

func TestUploadsAnyField(t *testing.T) {
	store := &memStorage{stored: map[string]string{}}
	app := fiber.New()
	app.Use(Context())
	app.Post("/", Uploads(store, 1<<20, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.JSON(FromCtx(c).Uploads)
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "Ugadi")
	fw, _ := w.CreateFormFile("image", "poster.jpg")
	_, _ = fw.Write([]byte("jpeg bytes"))
	fw, _ = w.CreateFormFile("cloudFile", "clip.mp4")
	_, _ = fw.Write([]byte("mp4 bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "poster.jpg") || !strings.Contains(string(raw), "clip.mp4") {
		t.Errorf("uploads: got %s", raw)
	}
	if store.stored["x-poster.jpg"] != "jpeg bytes" || store.stored["x-clip.mp4"] != "mp4 bytes" {
		t.Errorf("stored: got %v", store.stored)
	}
}

func TestUploadsPassesJSONThrough(t *testing.T) {
	store := &memStorage{stored: map[string]string{}}
	app := fiber.New()
	app.Post("/", Uploads(store, 1<<20, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(len(FromCtx(c).Uploads) + http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK || len(store.stored) != 0 {
		t.Errorf("status %d, stored %v", resp.StatusCode, store.stored)
	}
}
