package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/email"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/payment"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/tasks"
)

type fakeAccounts struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.Account
	// createErr is returned by Create when set, as a unique index would.
	createErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{rows: map[uint]*models.Account{}}
}

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) Get(ctx context.Context, id uint, preloads ...string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) Save(ctx context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, addr string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if strings.EqualFold(a.Email, addr) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) EmailExists(ctx context.Context, addr string) (bool, error) {
	_, err := f.FindByEmail(ctx, addr)
	return err == nil, nil
}

func (f *fakeAccounts) GetDetailed(ctx context.Context, id uint) (*models.Account, error) {
	return f.Get(ctx, id)
}

func (f *fakeAccounts) FindOfType(ctx context.Context, id uint, accountType string) (*models.Account, error) {
	a, err := f.Get(ctx, id)
	if err != nil || a.Type != accountType {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccounts) ofType(accountType string) []models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for id := uint(1); id <= f.nextID; id++ {
		if a, ok := f.rows[id]; ok && a.Type == accountType {
			out = append(out, *a)
		}
	}
	return out
}

func (f *fakeAccounts) ListMembers(ctx context.Context, flt repository.MemberFilter) ([]models.Account, int64, error) {
	all := f.ofType(models.AccountMember)
	return all, int64(len(all)), nil
}

func (f *fakeAccounts) ListVolunteers(ctx context.Context, page, limit int) ([]models.Account, int64, error) {
	all := f.ofType(models.AccountVolunteer)
	return all, int64(len(all)), nil
}

func (f *fakeAccounts) DeleteOfType(ctx context.Context, ids []uint, accountType string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if a, ok := f.rows[id]; ok && a.Type == accountType {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeAccounts) UpdateFirstPaymentReference(ctx context.Context, userID uint, method, transactionID string) error {
	return nil
}

func (f *fakeAccounts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeOTPs struct {
	codes map[string]string
}

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{codes: map[string]string{}} }

func (f *fakeOTPs) Upsert(ctx context.Context, addr, code string) error {
	f.codes[addr] = code
	return nil
}

func (f *fakeOTPs) Find(ctx context.Context, addr string) (*models.OTP, error) {
	code, ok := f.codes[addr]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.OTP{Email: addr, Code: code}, nil
}

func (f *fakeOTPs) Delete(ctx context.Context, addr string) error {
	delete(f.codes, addr)
	return nil
}

type fakePlans struct {
	rows map[uint]*models.MembershipPlan
}

func newFakePlans(plans ...models.MembershipPlan) *fakePlans {
	f := &fakePlans{rows: map[uint]*models.MembershipPlan{}}
	for i := range plans {
		p := plans[i]
		f.rows[p.ID] = &p
	}
	return f
}

func (f *fakePlans) Create(ctx context.Context, p *models.MembershipPlan) error {
	p.ID = uint(len(f.rows) + 1)
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePlans) Get(ctx context.Context, id uint, preloads ...string) (*models.MembershipPlan, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlans) Save(ctx context.Context, p *models.MembershipPlan) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePlans) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePlans) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.rows))
	f.rows = map[uint]*models.MembershipPlan{}
	return n, nil
}

func (f *fakePlans) List(ctx context.Context, flt repository.PlanFilter) ([]models.MembershipPlan, int64, error) {
	var out []models.MembershipPlan
	for _, p := range f.rows {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePlans) Active(ctx context.Context) ([]models.MembershipPlan, error) {
	var out []models.MembershipPlan
	for _, p := range f.rows {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlans) ActiveByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error) {
	for _, p := range f.rows {
		if p.IsActive && p.Duration == duration {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlans) ByDuration(ctx context.Context, duration string) (*models.MembershipPlan, error) {
	for _, p := range f.rows {
		if p.Duration == duration {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePayments struct {
	mu   sync.Mutex
	rows []*models.Payment
}

func (f *fakePayments) Create(ctx context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uint(len(f.rows) + 1)
	cp := *p
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakePayments) Save(ctx context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.ID == p.ID {
			cp := *p
			f.rows[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePayments) find(match func(*models.Payment) bool) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if match(r) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePayments) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	return f.find(func(p *models.Payment) bool { return p.PaypalOrderID != nil && *p.PaypalOrderID == orderID })
}

func (f *fakePayments) FindByTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	return f.find(func(p *models.Payment) bool { return p.PaypalTransactionID != nil && *p.PaypalTransactionID == txID })
}

func (f *fakePayments) ForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeDonations struct {
	rows []*models.Donation
}

func (f *fakeDonations) Create(ctx context.Context, d *models.Donation) error {
	d.ID = uint(len(f.rows) + 1)
	cp := *d
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeDonations) Save(ctx context.Context, d *models.Donation) error {
	for i, r := range f.rows {
		if r.ID == d.ID {
			cp := *d
			f.rows[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeDonations) FindByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	for _, r := range f.rows {
		if r.OrderID == orderID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDonations) List(ctx context.Context, flt repository.DonationFilter) ([]models.Donation, int64, error) {
	var out []models.Donation
	for _, r := range f.rows {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

// fakeTx runs fn directly; the fakes have no rollback.
type fakeTx struct{ calls int }

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// syncRunner runs tasks inline so tests can observe their effects.
type syncRunner struct {
	mu    sync.Mutex
	names []string
}

func (r *syncRunner) Go(name string, fn tasks.Func) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	_ = fn(context.Background())
}

type sentMail struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) record(s sentMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
	return nil
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, subject, code string) error {
	return m.record(sentMail{Kind: "otp", To: to, Subject: subject, Body: code})
}

func (m *fakeMailer) SendWelcome(ctx context.Context, to, subject, password string) error {
	return m.record(sentMail{Kind: "welcome", To: to, Subject: subject, Body: password})
}

func (m *fakeMailer) SendDonationReceipt(ctx context.Context, to string, r email.DonationReceipt) error {
	return m.record(sentMail{Kind: "receipt", To: to, Subject: email.SubjectDonationReceipt, Body: r.TransactionID})
}

func (m *fakeMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(id uint) (string, error) { return "token", nil }

type fakeGateway struct {
	created  []payment.OrderRequest
	captured []string
	capture  *payment.Capture
	err      error
}

func (g *fakeGateway) Name() string { return "paypal" }

func (g *fakeGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.created = append(g.created, req)
	return &payment.Order{ID: "ORDER-1", ApproveURL: "https://paypal.test/approve"}, nil
}

func (g *fakeGateway) CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error) {
	g.captured = append(g.captured, orderID)
	if g.err != nil {
		return nil, g.err
	}
	return g.capture, nil
}

type fakeRemover struct {
	mu      sync.Mutex
	deleted []string
}

func (r *fakeRemover) Delete(ctx context.Context, u string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, u)
	return nil
}

func (r *fakeRemover) urls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deleted...)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
