package repository

import (
	"context"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"gorm.io/gorm"
)

const (
	EventsPast   = "past"
	EventsFuture = "future"
)

type EventFilter struct {
	Page   int
	Limit  int
	Search string
	Type   string
	// Today is the YYYY-MM-DD cut-off for past and future listings.
	Today string
}

type EventRepository struct {
	*Repository[models.Event]
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{Repository: New[models.Event](db)}
}

func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	filters := []Scope{Like(f.Search, "eventtitle", "eventvenue")}
	switch f.Type {
	case EventsPast:
		filters = append(filters, Where("eventdate < ?", f.Today))
	case EventsFuture:
		filters = append(filters, Where("eventdate >= ?", f.Today))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "created_at DESC"}, filters...)
}

// Upcoming returns up to n events dated today or later, soonest first.
func (r *EventRepository) Upcoming(ctx context.Context, today string, n int) ([]models.Event, error) {
	return r.Find(ctx, ListOptions{Limit: n, Order: "eventdate ASC"}, Where("eventdate >= ?", today))
}

func (r *EventRepository) CountUpcoming(ctx context.Context, today string) (int64, error) {
	return r.Count(ctx, Where("eventdate >= ?", today))
}

type GalleryFilter struct {
	Page      int
	Limit     int
	MediaType string
	Year      string
	Title     string
}

type GalleryRepository struct {
	*Repository[models.Gallery]
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{Repository: New[models.Gallery](db)}
}

func (r *GalleryRepository) List(ctx context.Context, f GalleryFilter) ([]models.Gallery, int64, error) {
	filters := []Scope{Like(f.Title, "title")}
	if f.MediaType != "" {
		filters = append(filters, Where("media_type = ?", f.MediaType))
	}
	if f.Year != "" {
		filters = append(filters, Where("year = ?", f.Year))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "created_at DESC"}, filters...)
}

// Years lists the distinct gallery years, newest first, optionally for one media type.
func (r *GalleryRepository) Years(ctx context.Context, mediaType string) ([]string, error) {
	years := []string{}
	q := r.conn(ctx).Model(&models.Gallery{})
	if mediaType != "" {
		q = q.Where("media_type = ?", mediaType)
	}
	err := q.Distinct("year").Order("year DESC").Pluck("year", &years).Error
	return years, err
}

func (r *GalleryRepository) Titles(ctx context.Context, mediaType string) ([]string, error) {
	titles := []string{}
	q := r.conn(ctx).Model(&models.Gallery{})
	if mediaType != "" {
		q = q.Where("media_type = ?", mediaType)
	}
	err := q.Distinct("title").Order("title ASC").Pluck("title", &titles).Error
	return titles, err
}

func (r *GalleryRepository) OfMediaType(ctx context.Context, mediaType string) ([]models.Gallery, error) {
	return r.Find(ctx, ListOptions{}, Where("media_type = ?", mediaType))
}

func (r *GalleryRepository) DeleteOfMediaType(ctx context.Context, mediaType string) (int64, error) {
	res := r.conn(ctx).Where("media_type = ?", mediaType).Delete(&models.Gallery{})
	return res.RowsAffected, res.Error
}

type BoardFilter struct {
	Page   int
	Limit  int
	Year   string
	Search string
}

type BoardMemberRepository struct {
	*Repository[models.BoardMember]
}

func NewBoardMemberRepository(db *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{Repository: New[models.BoardMember](db)}
}

func (r *BoardMemberRepository) List(ctx context.Context, f BoardFilter) ([]models.BoardMember, int64, error) {
	filters := []Scope{Like(f.Search, "role", "firstname")}
	if f.Year != "" {
		filters = append(filters, Where("year = ?", f.Year))
	}
	return r.Page(ctx, ListOptions{Page: f.Page, Limit: f.Limit, Order: "created_at DESC"}, filters...)
}

func (r *BoardMemberRepository) Years(ctx context.Context) ([]string, error) {
	years := []string{}
	err := r.conn(ctx).Model(&models.BoardMember{}).Distinct("year").Order("year DESC").Pluck("year", &years).Error
	return years, err
}

type HighlightRepository struct {
	*Repository[models.HomepageHighlight]
}

func NewHighlightRepository(db *gorm.DB) *HighlightRepository {
	return &HighlightRepository{Repository: New[models.HomepageHighlight](db)}
}

func (r *HighlightRepository) List(ctx context.Context, page, limit int) ([]models.HomepageHighlight, int64, error) {
	return r.Page(ctx, ListOptions{Page: page, Limit: limit, Order: "created_at DESC"})
}

type NewsRepository struct {
	*Repository[models.News]
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{Repository: New[models.News](db)}
}

// Latest returns the newest n items; n <= 0 returns everything.
func (r *NewsRepository) Latest(ctx context.Context, n int) ([]models.News, error) {
	return r.Find(ctx, ListOptions{Limit: n, Order: "created_at DESC"})
}
