package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/middleware"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/tasks"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
	"go.uber.org/zap"
)

type eventStore struct {
	rows   map[uint]models.Event
	nextID uint
}

func (s *eventStore) Create(ctx context.Context, v *models.Event) error {
	s.nextID++
	v.ID = s.nextID
	s.rows[v.ID] = *v
	return nil
}

func (s *eventStore) Get(ctx context.Context, id uint, preloads ...string) (*models.Event, error) {
	v, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (s *eventStore) Save(ctx context.Context, v *models.Event) error {
	s.rows[v.ID] = *v
	return nil
}

func (s *eventStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *eventStore) All(ctx context.Context, order string) ([]models.Event, error) {
	var out []models.Event
	for _, v := range s.rows {
		out = append(out, v)
	}
	return out, nil
}

func (s *eventStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(s.rows))
	s.rows = map[uint]models.Event{}
	return n, nil
}

type inlineRunner struct{}

func (inlineRunner) Go(name string, fn tasks.Func) { _ = fn(context.Background()) }

type discardFiles struct{ removed []string }

func (d *discardFiles) Delete(ctx context.Context, u string) error {
	d.removed = append(d.removed, u)
	return nil
}

// eventApp mounts the event routes with uploads taken from the X-Upload
// header instead of a multipart body.
func eventApp() (*fiber.App, *discardFiles) {
	files := &discardFiles{}
	records := controller.NewContent[models.Event, *models.Event](controller.Config[models.Event]{
		Store: &eventStore{rows: map[uint]models.Event{}},
		Shape: media.Single,
		Files: service.NewFileCleaner(files, inlineRunner{}, zap.NewNop()),
		Messages: controller.Messages{
			NotFound: "Event not found",
			Empty:    "No Event documents found",
		},
	})
	h := NewEventHandler(nil, records)

	fakeUploads := func(c *fiber.Ctx) error {
		if name := c.Get("X-Upload"); name != "" {
			middleware.FromCtx(c).Uploads = []media.Upload{{Field: "file", Filename: name, URL: "/uploads/" + name}}
		}
		return c.Next()
	}
	app := fiber.New()
	app.Get("/single_event/:id", h.Get)
	app.Post("/create_event", fakeUploads, h.Create)
	app.Patch("/update_event/:id", fakeUploads, h.Update)
	app.Delete("/delete_event/:id", h.Delete)
	app.Delete("/delete_all_events", h.DeleteAll)
	return app, files
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	body := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, body
}

func form(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validEvent() url.Values {
	return url.Values{
		"Eventtitle":       {"Ugadi"},
		"Eventdate":        {"2026-03-19"},
		"Eventtime":        {"18:00"},
		"Eventvenue":       {"Community Hall"},
		"EventDescription": {"<p>New year</p>"},
	}
}

func TestInvalidIDIs422(t *testing.T) {
	app, _ := eventApp()
	for _, id := range []string{"abc", "0", "-4"} {
		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/single_event/"+id, nil))
		if status != http.StatusUnprocessableEntity {
			t.Errorf("id %q: got status %d, want 422", id, status)
		}
		if body["message"] != msgInvalidEventID {
			t.Errorf("id %q: got message %v, want %q", id, body["message"], msgInvalidEventID)
		}
	}
}

func TestEventNotFound(t *testing.T) {
	app, _ := eventApp()
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/single_event/9", nil))
	if status != http.StatusNotFound || body["message"] != "Event not found" {
		t.Errorf("got %d %v, want 404 Event not found", status, body["message"])
	}
}

func TestEventCreateThenGet(t *testing.T) {
	app, _ := eventApp()
	req := form(http.MethodPost, "/create_event", validEvent())
	req.Header.Set("X-Upload", "poster.jpg")
	status, body := do(t, app, req)
	if status != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201 (%v)", status, body)
	}
	if body["message"] != "Event created successfully" {
		t.Errorf("create: got message %v", body["message"])
	}

	status, body = do(t, app, httptest.NewRequest(http.MethodGet, "/single_event/1", nil))
	if status != http.StatusOK {
		t.Fatalf("get: got status %d, want 200", status)
	}
	event, _ := body["event"].(map[string]interface{})
	if event["Eventtitle"] != "Ugadi" {
		t.Errorf("get: got title %v, want Ugadi", event["Eventtitle"])
	}
}

func TestEventCreateMissingFields(t *testing.T) {
	app, files := eventApp()
	req := form(http.MethodPost, "/create_event", url.Values{"Eventtitle": {"Ugadi"}})
	req.Header.Set("X-Upload", "poster.jpg")
	status, _ := do(t, app, req)
	if status != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", status)
	}
	if len(files.removed) != 1 || files.removed[0] != "/uploads/poster.jpg" {
		t.Errorf("rejected upload: got removed %v, want [/uploads/poster.jpg]", files.removed)
	}
}

func TestEventUpdateMessage(t *testing.T) {
	app, files := eventApp()
	req := form(http.MethodPost, "/create_event", validEvent())
	req.Header.Set("X-Upload", "old.jpg")
	do(t, app, req)

	_, body := do(t, app, form(http.MethodPatch, "/update_event/1", url.Values{"Eventvenue": {"Temple"}}))
	if want := "Event updated successfully (no new file uploaded)"; body["message"] != want {
		t.Errorf("without file: got %v, want %q", body["message"], want)
	}

	req = form(http.MethodPatch, "/update_event/1", url.Values{})
	req.Header.Set("X-Upload", "new.png")
	_, body = do(t, app, req)
	if want := "Event updated successfully with new file"; body["message"] != want {
		t.Errorf("with file: got %v, want %q", body["message"], want)
	}
	if len(files.removed) != 1 || files.removed[0] != "/uploads/old.jpg" {
		t.Errorf("replaced file: got removed %v, want [/uploads/old.jpg]", files.removed)
	}
}

func TestEventDeleteAllEmpty(t *testing.T) {
	app, _ := eventApp()
	status, body := do(t, app, httptest.NewRequest(http.MethodDelete, "/delete_all_events", nil))
	if status != http.StatusUnprocessableEntity || body["message"] != "No Event documents found" {
		t.Errorf("got %d %v, want 422 No Event documents found", status, body["message"])
	}
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"service error", service.Conflict("Email already exists"), http.StatusConflict, "Email already exists"},
		{"wrapped", errors.Join(errors.New("ctx"), service.Forbidden("no")), http.StatusForbidden, "no"},
		{"validation", &service.ValidationError{Fields: []utils.FieldError{{Key: "email", Message: "email is required"}}}, http.StatusUnprocessableEntity, "Validation failed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return respond(c, tt.err) })
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("%s: got status %d, want %d", tt.name, resp.StatusCode, tt.status)
		}
		if tt.message == "" {
			continue
		}
		var body models.Response
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Status || body.Message != tt.message {
			t.Errorf("%s: got %+v, want message %q", tt.name, body, tt.message)
		}
	}
}

func TestBulkRequiresFile(t *testing.T) {
	app := fiber.New()
	app.Post("/bulk", NewMemberHandler(nil, nil).BulkMembers)
	status, body := do(t, app, form(http.MethodPost, "/bulk", url.Values{}))
	if status != http.StatusUnprocessableEntity || body["message"] != "CSV file is required" {
		t.Errorf("got %d %v, want 422 CSV file is required", status, body["message"])
	}
}

func TestDonationCancel(t *testing.T) {
	app := fiber.New()
	app.Get("/cancel-order", (&DonationHandler{}).Cancel)
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/cancel-order", nil))
	if status != http.StatusOK || body["success"] != false || body["message"] != "Payment was cancelled." {
		t.Errorf("got %d %v", status, body)
	}
}

func TestWithPage(t *testing.T) {
	got := withPage(fiber.Map{"status": true}, models.NewPage(2, 10, 25))
	if got["currentPage"] != 2 || got["totalPages"] != 3 || got["totalItems"] != int64(25) {
		t.Errorf("got %v, want page 2 of 3 with 25 items", got)
	}
}
