package service

import (
	"context"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"go.uber.org/zap"
)

// fakeHighlights implements only what the highlight tests reach; the
// embedded interface panics on anything else.
type fakeHighlights struct {
	HighlightStore
	rows map[uint]models.HomepageHighlight
}

func (f *fakeHighlights) FindIDs(ctx context.Context, ids []uint) ([]models.HomepageHighlight, error) {
	var out []models.HomepageHighlight
	for _, id := range ids {
		if h, ok := f.rows[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHighlights) DeleteIDs(ctx context.Context, ids []uint, filters ...repository.Scope) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.rows[id]; ok {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

type fakeGalleries struct {
	GalleryStore
	rows []models.Gallery
}

func (f *fakeGalleries) OfMediaType(ctx context.Context, mediaType string) ([]models.Gallery, error) {
	var out []models.Gallery
	for _, g := range f.rows {
		if g.MediaType == mediaType {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGalleries) All(ctx context.Context, order string) ([]models.Gallery, error) {
	return append([]models.Gallery(nil), f.rows...), nil
}

func (f *fakeGalleries) DeleteOfMediaType(ctx context.Context, mediaType string) (int64, error) {
	kept := f.rows[:0]
	var n int64
	for _, g := range f.rows {
		if g.MediaType == mediaType {
			n++
			continue
		}
		kept = append(kept, g)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeGalleries) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.rows))
	f.rows = nil
	return n, nil
}

func newContentFixture(h *fakeHighlights, g *fakeGalleries) (*ContentService, *fakeRemover) {
	remover := &fakeRemover{}
	svc := NewContentService(ContentDeps{
		Galleries:  g,
		Highlights: h,
		Files:      NewFileCleaner(remover, &syncRunner{}, zap.NewNop()),
		Now:        fixedClock(time.Date(2025, time.July, 4, 9, 0, 0, 0, time.UTC)),
	})
	return svc, remover
}

func TestDeleteHighlights(t *testing.T) {
	h := &fakeHighlights{rows: map[uint]models.HomepageHighlight{
		1: {ID: 1, EventName: "Ugadi", CloudFile: media.SingleMedia(media.FromURL("/uploads/ugadi.jpg"))},
		2: {ID: 2, EventName: "Diwali"},
		3: {ID: 3, EventName: "Sankranti", CloudFile: media.SingleMedia(media.FromURL("/uploads/sankranti.jpg"))},
	}}
	svc, remover := newContentFixture(h, nil)

	n, err := svc.DeleteHighlights(context.Background(), []uint{1, 2, 42})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted: got %d, want 2", n)
	}
	if _, ok := h.rows[3]; !ok {
		t.Error("unlisted highlight removed")
	}
	if got, want := remover.urls(), []string{"/uploads/ugadi.jpg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("files: got %v, want %v", got, want)
	}
}

func TestDeleteHighlightsErrors(t *testing.T) {
	tests := []struct {
		name   string
		ids    []uint
		status int
	}{
		{"empty list", nil, http.StatusBadRequest},
		{"none exist", []uint{7, 8}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newContentFixture(&fakeHighlights{rows: map[uint]models.HomepageHighlight{}}, nil)
			if _, err := svc.DeleteHighlights(context.Background(), tt.ids); statusOf(err) != tt.status {
				t.Errorf("status: got %d, want %d (err %v)", statusOf(err), tt.status, err)
			}
		})
	}
}

func TestDeleteGalleries(t *testing.T) {
	seed := func() *fakeGalleries {
		return &fakeGalleries{rows: []models.Gallery{
			{ID: 1, MediaType: models.MediaPhotos, CloudFile: media.MediaList(media.Item{Image: "/uploads/a.jpg", PublicID: "a.jpg"}, media.Item{Image: "/uploads/b.jpg", PublicID: "b.jpg"})},
			{ID: 2, MediaType: models.MediaVideos, CloudFile: media.MediaList(media.Item{Image: "/uploads/c.mp4", PublicID: "c.mp4"})},
		}}
	}

	t.Run("by media type", func(t *testing.T) {
		g := seed()
		svc, remover := newContentFixture(nil, g)
		msg, err := svc.DeleteGalleries(context.Background(), models.MediaPhotos)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if msg != "All photos galleries deleted successfully" {
			t.Errorf("message: got %q", msg)
		}
		if len(g.rows) != 1 || g.rows[0].ID != 2 {
			t.Errorf("remaining: got %+v", g.rows)
		}
		if got := remover.urls(); len(got) != 2 {
			t.Errorf("files: got %v", got)
		}
	})

	t.Run("all", func(t *testing.T) {
		g := seed()
		svc, remover := newContentFixture(nil, g)
		msg, err := svc.DeleteGalleries(context.Background(), "")
		if err != nil || msg != "All galleries deleted successfully" {
			t.Fatalf("delete: got %q, %v", msg, err)
		}
		if len(g.rows) != 0 || len(remover.urls()) != 3 {
			t.Errorf("rows %d, files %v", len(g.rows), remover.urls())
		}
	})

	t.Run("nothing to delete", func(t *testing.T) {
		svc, _ := newContentFixture(nil, &fakeGalleries{})
		_, err := svc.DeleteGalleries(context.Background(), models.MediaVideos)
		if statusOf(err) != http.StatusUnprocessableEntity || err.Error() != "No videos gallery documents found" {
			t.Errorf("error: got %v", err)
		}
	})
}

func TestEventFieldsSanitizesDescription(t *testing.T) {
	var e models.Event
	err := EventFields(models.EventRequest{
		Eventtitle:       " Bathukamma ",
		Eventdate:        "2025-10-01",
		Eventtime:        "18:00",
		Eventvenue:       "Community Hall",
		EventDescription: `<p>Join us</p><script>alert(1)</script>`,
	})(&e)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if e.Eventtitle != "Bathukamma" {
		t.Errorf("title: got %q", e.Eventtitle)
	}
	if e.EventDescription != "<p>Join us</p>" {
		t.Errorf("description: got %q", e.EventDescription)
	}

	err = EventFields(models.EventRequest{Eventtitle: "x"})(&e)
	if statusOf(err) != http.StatusBadRequest {
		t.Errorf("missing fields: got %v", err)
	}
}

func TestMembershipTrend(t *testing.T) {
	day := func(y int) time.Time { return time.Date(y, time.May, 1, 0, 0, 0, 0, time.UTC) }
	got := MembershipTrend([]time.Time{day(2024), day(2022), day(2024), day(2023), day(2024)})
	want := []TrendPoint{{"2022", 1}, {"2023", 1}, {"2024", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trend: got %v, want %v", got, want)
	}
	if got := MembershipTrend(nil); len(got) != 0 {
		t.Errorf("empty trend: got %v", got)
	}
}

type stubPlans struct {
	SponsorshipPlanStore
	titles map[string]uint
	saved  []models.SponsorshipPlan
}

func (s *stubPlans) TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error) {
	id, ok := s.titles[title]
	return ok && id != exceptID, nil
}

func (s *stubPlans) Create(ctx context.Context, p *models.SponsorshipPlan) error {
	p.ID = uint(len(s.saved) + 10)
	s.saved = append(s.saved, *p)
	return nil
}

func TestCreateSponsorshipPlan(t *testing.T) {
	plans := &stubPlans{titles: map[string]uint{"Gold": 1}}
	svc := NewPlanService(nil, plans)
	ctx := context.Background()

	_, err := svc.CreateSponsorshipPlan(ctx, models.SponsorshipPlanRequest{Title: "Gold", Amount: "1000", Benefits: "Logo"})
	if statusOf(err) != http.StatusConflict {
		t.Errorf("duplicate title: got %v", err)
	}

	plan, err := svc.CreateSponsorshipPlan(ctx, models.SponsorshipPlanRequest{Title: " Silver ", Amount: "500", Benefits: "Banner", IsActive: "false"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if plan.Title != "Silver" || plan.Amount != 500 || plan.IsActive {
		t.Errorf("plan: got %+v", plan)
	}

	_, err = svc.CreateSponsorshipPlan(ctx, models.SponsorshipPlanRequest{Title: "Bronze", Amount: "lots", Benefits: "x"})
	if err == nil || err.Error() != "Amount must be a valid number" {
		t.Errorf("bad amount: got %v", err)
	}
}

func TestTodayIsUTC(t *testing.T) {
	// 01:30 on June 1 in India is still May 31 in UTC.
	ist := time.FixedZone("IST", 5*3600+1800)
	clock := fixedClock(time.Date(2025, time.June, 1, 1, 30, 0, 0, ist))

	content := NewContentService(ContentDeps{Now: clock})
	if got := content.Today(); got != "2025-05-31" {
		t.Errorf("content today: got %s, want 2025-05-31", got)
	}
	dashboard := NewDashboardService(DashboardDeps{Now: clock})
	if _, got := dashboard.today(); got != content.Today() {
		t.Errorf("dashboard today: got %s, content says %s", got, content.Today())
	}
}
