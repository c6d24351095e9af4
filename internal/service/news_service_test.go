package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
)

type fakeNews struct {
	nextID uint
	rows   map[uint]models.News
}

func (f *fakeNews) Create(ctx context.Context, n *models.News) error {
	f.nextID++
	n.ID = f.nextID
	f.rows[n.ID] = *n
	return nil
}

func (f *fakeNews) Get(ctx context.Context, id uint, preloads ...string) (*models.News, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (f *fakeNews) Save(ctx context.Context, n *models.News) error {
	f.rows[n.ID] = *n
	return nil
}

func (f *fakeNews) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeNews) Latest(ctx context.Context, n int) ([]models.News, error) {
	var out []models.News
	for _, v := range f.rows {
		out = append(out, v)
	}
	return out, nil
}

func TestNewsLifecycle(t *testing.T) {
	store := &fakeNews{rows: map[uint]models.News{}}
	svc := NewNewsService(store)
	ctx := context.Background()

	for _, raw := range []string{"", "   ", "<script>alert(1)</script>"} {
		if _, err := svc.Create(ctx, models.NewsRequest{Description: raw}); statusOf(err) != http.StatusUnprocessableEntity {
			t.Errorf("create %q: got %v, want 422", raw, err)
		}
	}

	n, err := svc.Create(ctx, models.NewsRequest{Description: `<p onclick="x()">Ugadi celebrations on March 30</p><script>steal()</script>`})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := "<p>Ugadi celebrations on March 30</p>"; n.Description != want {
		t.Errorf("description: got %q, want %q", n.Description, want)
	}

	updated, err := svc.Update(ctx, n.ID, models.NewsRequest{Description: "<b>Venue moved</b>"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "<b>Venue moved</b>" {
		t.Errorf("updated: got %q", updated.Description)
	}
	if _, err := svc.Update(ctx, n.ID, models.NewsRequest{Description: ""}); statusOf(err) != http.StatusUnprocessableEntity {
		t.Errorf("empty update: got %v, want 422", err)
	}
	if stored, _ := svc.Get(ctx, n.ID); stored.Description != "<b>Venue moved</b>" {
		t.Errorf("after empty update: got %q", stored.Description)
	}
	if _, err := svc.Update(ctx, 42, models.NewsRequest{Description: "x"}); statusOf(err) != http.StatusNotFound {
		t.Errorf("update missing: got %v, want 404", err)
	}

	if err := svc.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, n.ID); statusOf(err) != http.StatusNotFound || err.Error() != "News not found" {
		t.Errorf("get deleted: got %v", err)
	}
	if err := svc.Delete(ctx, n.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("delete twice: got %v, want 404", err)
	}
}
