package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

type DashboardDeps struct {
	Members  MembershipStats
	Events   EventStore
	Sponsors interface {
		Counter
		Active(ctx context.Context) ([]models.Sponsor, error)
	}
	News interface {
		Counter
		Latest(ctx context.Context, n int) ([]models.News, error)
	}
	Highlights HighlightStore
	Now        Clock
}

// DashboardService aggregates the admin dashboard and the public home page.
type DashboardService struct {
	deps DashboardDeps
	now  Clock
}

func NewDashboardService(d DashboardDeps) *DashboardService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{deps: d, now: now}
}

type DashboardStats struct {
	ActiveMembers  int64 `json:"activeMembers"`
	UpcomingEvents int64 `json:"upcomingEvents"`
	TotalSponsors  int64 `json:"totalSponsors"`
	TotalNews      int64 `json:"totalNews"`
}

type TrendPoint struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	MembershipTrend []TrendPoint   `json:"membershipTrend"`
	UpcomingEvents  []models.Event `json:"upcomingEvents"`
	LatestNews      []models.News  `json:"latestNews"`
}

type Home struct {
	News           []models.News              `json:"news"`
	UpcomingEvents []models.Event             `json:"upcomingEvents"`
	Highlights     []models.HomepageHighlight `json:"highlights"`
	Sponsors       []models.Sponsor           `json:"sponsors"`
}

func (s *DashboardService) today() (time.Time, string) {
	now := s.now()
	return now, now.UTC().Format("2006-01-02")
}

func (s *DashboardService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now, today := s.today()
	d := &Dashboard{}
	var starts []time.Time

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Stats.ActiveMembers, err = s.deps.Members.CountActiveMembers(ctx, now)
		return err
	})
	g.Go(func() (err error) {
		d.Stats.UpcomingEvents, err = s.deps.Events.CountUpcoming(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		d.Stats.TotalSponsors, err = s.deps.Sponsors.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Stats.TotalNews, err = s.deps.News.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		starts, err = s.deps.Members.MembershipStartDates(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.UpcomingEvents, err = s.deps.Events.Upcoming(ctx, today, 5)
		return err
	})
	g.Go(func() (err error) {
		d.LatestNews, err = s.deps.News.Latest(ctx, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.MembershipTrend = MembershipTrend(starts)
	return d, nil
}

// MembershipTrend counts membership starts per calendar year, oldest first.
func MembershipTrend(starts []time.Time) []TrendPoint {
	counts := map[int]int{}
	for _, t := range starts {
		counts[t.Year()]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	trend := make([]TrendPoint, 0, len(years))
	for _, y := range years {
		trend = append(trend, TrendPoint{Year: strconv.Itoa(y), Count: counts[y]})
	}
	return trend
}

func (s *DashboardService) Home(ctx context.Context) (*Home, error) {
	_, today := s.today()
	h := &Home{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		h.News, err = s.deps.News.Latest(ctx, 0)
		return err
	})
	g.Go(func() (err error) {
		h.UpcomingEvents, err = s.deps.Events.Upcoming(ctx, today, 3)
		return err
	})
	g.Go(func() (err error) {
		h.Highlights, err = s.deps.Highlights.All(ctx, "created_at DESC")
		return err
	})
	g.Go(func() (err error) {
		h.Sponsors, err = s.deps.Sponsors.Active(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return h, nil
}
