package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
)

const eventsPerPage = 4

type ContentDeps struct {
	Events     EventStore
	Galleries  GalleryStore
	Board      BoardMemberStore
	Highlights HighlightStore
	Files      *FileCleaner
	Now        Clock
}

// ContentService serves the listings of events, gallery, board members and
// highlights, and the bulk deletes that are not per record.
type ContentService struct {
	events     EventStore
	galleries  GalleryStore
	board      BoardMemberStore
	highlights HighlightStore
	files      *FileCleaner
	now        Clock
}

func NewContentService(d ContentDeps) *ContentService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &ContentService{
		events:     d.Events,
		galleries:  d.Galleries,
		board:      d.Board,
		highlights: d.Highlights,
		files:      d.Files,
		now:        now,
	}
}

// Today is the UTC YYYY-MM-DD date event dates are compared against.
func (s *ContentService) Today() string {
	return s.now().UTC().Format("2006-01-02")
}

// Events lists events four to a page, optionally only past or upcoming ones.
func (s *ContentService) Events(ctx context.Context, f repository.EventFilter) ([]models.Event, models.Page, error) {
	f.Page, _ = pageDefaults(f.Page, 0, eventsPerPage)
	f.Limit = eventsPerPage
	f.Today = s.Today()
	events, total, err := s.events.List(ctx, f)
	if err != nil {
		return nil, models.Page{}, err
	}
	return events, models.NewPage(f.Page, f.Limit, total), nil
}

type GalleryListing struct {
	Gallery []models.Gallery
	Page    models.Page
	Years   []string
	Titles  []string
}

func (s *ContentService) Galleries(ctx context.Context, f repository.GalleryFilter) (*GalleryListing, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 2)
	items, total, err := s.galleries.List(ctx, f)
	if err != nil {
		return nil, err
	}
	years, err := s.galleries.Years(ctx, f.MediaType)
	if err != nil {
		return nil, err
	}
	titles, err := s.galleries.Titles(ctx, f.MediaType)
	if err != nil {
		return nil, err
	}
	return &GalleryListing{Gallery: items, Page: models.NewPage(f.Page, f.Limit, total), Years: years, Titles: titles}, nil
}

// DeleteGalleries removes every gallery, or every gallery of one media
// type, and returns the confirmation message.
func (s *ContentService) DeleteGalleries(ctx context.Context, mediaType string) (string, error) {
	mediaType = strings.TrimSpace(mediaType)
	var (
		galleries []models.Gallery
		err       error
	)
	if mediaType != "" {
		galleries, err = s.galleries.OfMediaType(ctx, mediaType)
	} else {
		galleries, err = s.galleries.All(ctx, "id ASC")
	}
	if err != nil {
		return "", err
	}
	if len(galleries) == 0 {
		if mediaType != "" {
			return "", Unprocessable(fmt.Sprintf("No %s gallery documents found", mediaType))
		}
		return "", Unprocessable("No gallery documents found")
	}

	if mediaType != "" {
		_, err = s.galleries.DeleteOfMediaType(ctx, mediaType)
	} else {
		_, err = s.galleries.DeleteAll(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("delete galleries: %w", err)
	}
	var urls []string
	for _, g := range galleries {
		urls = append(urls, g.CloudFile.URLs()...)
	}
	s.files.Discard(urls...)

	if mediaType != "" {
		return fmt.Sprintf("All %s galleries deleted successfully", mediaType), nil
	}
	return "All galleries deleted successfully", nil
}

type BoardListing struct {
	Members []models.BoardMember
	Page    models.Page
	Years   []string
}

func (s *ContentService) BoardMembers(ctx context.Context, f repository.BoardFilter) (*BoardListing, error) {
	f.Page, f.Limit = pageDefaults(f.Page, f.Limit, 5)
	members, total, err := s.board.List(ctx, f)
	if err != nil {
		return nil, err
	}
	years, err := s.board.Years(ctx)
	if err != nil {
		return nil, err
	}
	return &BoardListing{Members: members, Page: models.NewPage(f.Page, f.Limit, total), Years: years}, nil
}

func (s *ContentService) Highlights(ctx context.Context, page, limit int) ([]models.HomepageHighlight, models.Page, error) {
	page, limit = pageDefaults(page, limit, 10)
	items, total, err := s.highlights.List(ctx, page, limit)
	if err != nil {
		return nil, models.Page{}, err
	}
	return items, models.NewPage(page, limit, total), nil
}

// DeleteHighlights removes the listed highlights and returns how many went.
func (s *ContentService) DeleteHighlights(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, BadRequest("Invalid request. Please provide a non-empty array of integer IDs.")
	}
	existing, err := s.highlights.FindIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return 0, NotFound("No highlights found for the provided IDs.")
	}
	n, err := s.highlights.DeleteIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete highlights: %w", err)
	}
	var urls []string
	for _, h := range existing {
		urls = append(urls, h.CloudFile.URLs()...)
	}
	s.files.Discard(urls...)
	return n, nil
}

// EventFields validates a new event. The description is sanitized.
func EventFields(req models.EventRequest) func(*models.Event) error {
	return func(e *models.Event) error {
		if anyBlank(req.Eventtitle, req.Eventdate, req.Eventtime, req.Eventvenue, req.EventDescription) {
			return BadRequest("Eventtitle, Eventdate, Eventtime, Eventvenue and EventDescription are required")
		}
		e.Eventtitle = strings.TrimSpace(req.Eventtitle)
		e.Eventdate = strings.TrimSpace(req.Eventdate)
		e.Eventtime = strings.TrimSpace(req.Eventtime)
		e.Eventvenue = strings.TrimSpace(req.Eventvenue)
		e.EventDescription = utils.SanitizeHTML(req.EventDescription)
		return nil
	}
}

// EventChanges applies the non-empty fields of an event edit.
func EventChanges(req models.EventRequest) func(*models.Event) error {
	return func(e *models.Event) error {
		setIf(&e.Eventtitle, req.Eventtitle)
		setIf(&e.Eventdate, req.Eventdate)
		setIf(&e.Eventtime, req.Eventtime)
		setIf(&e.Eventvenue, req.Eventvenue)
		if strings.TrimSpace(req.EventDescription) != "" {
			e.EventDescription = utils.SanitizeHTML(req.EventDescription)
		}
		return nil
	}
}

func GalleryFields(req models.GalleryRequest) func(*models.Gallery) error {
	return func(g *models.Gallery) error {
		if anyBlank(req.Title, req.Year, req.MediaType) {
			return BadRequest("Title, year, and mediaType are required")
		}
		g.Title = strings.TrimSpace(req.Title)
		g.Year = strings.TrimSpace(req.Year)
		g.MediaType = strings.TrimSpace(req.MediaType)
		g.Youtubelink = strings.TrimSpace(req.Youtubelink)
		return nil
	}
}

func GalleryChanges(req models.GalleryRequest) func(*models.Gallery) error {
	return func(g *models.Gallery) error {
		setIf(&g.Title, req.Title)
		setIf(&g.Year, req.Year)
		setIf(&g.MediaType, req.MediaType)
		setIf(&g.Youtubelink, req.Youtubelink)
		return nil
	}
}

func BoardMemberFields(req models.BoardMemberRequest) func(*models.BoardMember) error {
	return func(b *models.BoardMember) error {
		if anyBlank(req.Year, req.Firstname, req.Lastname, req.Role) {
			return BadRequest("year, firstname, lastname and role are required")
		}
		b.Year = strings.TrimSpace(req.Year)
		b.Firstname = strings.TrimSpace(req.Firstname)
		b.Lastname = strings.TrimSpace(req.Lastname)
		b.Role = strings.TrimSpace(req.Role)
		return nil
	}
}

func BoardMemberChanges(req models.BoardMemberRequest) func(*models.BoardMember) error {
	return func(b *models.BoardMember) error {
		setIf(&b.Year, req.Year)
		setIf(&b.Firstname, req.Firstname)
		setIf(&b.Lastname, req.Lastname)
		setIf(&b.Role, req.Role)
		return nil
	}
}

func HighlightFields(req models.HighlightRequest) func(*models.HomepageHighlight) error {
	return func(h *models.HomepageHighlight) error {
		if anyBlank(req.EventName, req.HighlightText) {
			return BadRequest("Event name and highlight text are required")
		}
		h.EventName = strings.TrimSpace(req.EventName)
		h.HighlightText = strings.TrimSpace(req.HighlightText)
		return nil
	}
}

func HighlightChanges(req models.HighlightRequest) func(*models.HomepageHighlight) error {
	return func(h *models.HomepageHighlight) error {
		setIf(&h.EventName, req.EventName)
		setIf(&h.HighlightText, req.HighlightText)
		return nil
	}
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
