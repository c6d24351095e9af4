package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRun opens a handle that renders SQL without a server.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestLikeScope(t *testing.T) {
	db := dryRun(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Event
		return tx.Scopes(Like("Gala", "eventtitle", "eventvenue")).Find(&out)
	})
	if !strings.Contains(sql, "LOWER(eventtitle) LIKE '%gala%'") {
		t.Errorf("sql: got %s, want lowered title match", sql)
	}
	if !strings.Contains(sql, "OR LOWER(eventvenue) LIKE '%gala%'") {
		t.Errorf("sql: got %s, want venue alternative", sql)
	}
}

func TestLikeScopeEmptyTerm(t *testing.T) {
	if s := Like("", "title"); s != nil {
		t.Errorf("Like with empty term: got scope, want nil")
	}
}

func TestScopesSkipNil(t *testing.T) {
	got := scopes([]Scope{nil, Where("a = ?", 1), nil})
	if len(got) != 1 {
		t.Errorf("scopes: got %d, want 1", len(got))
	}
}

func TestListOptionsOffset(t *testing.T) {
	tests := []struct {
		opts ListOptions
		want int
	}{
		{ListOptions{Page: 1, Limit: 10}, 0},
		{ListOptions{Page: 3, Limit: 4}, 8},
		{ListOptions{Page: 0, Limit: 4}, 0},
		{ListOptions{Page: 2}, 0},
	}
	for _, tt := range tests {
		if got := tt.opts.offset(); got != tt.want {
			t.Errorf("offset(%+v): got %d, want %d", tt.opts, got, tt.want)
		}
	}
}

func TestConnFromPrefersTransaction(t *testing.T) {
	db := dryRun(t)
	tx := db.Session(&gorm.Session{})
	ctx := context.WithValue(context.Background(), txKey{}, tx)
	if got := connFrom(ctx, db); got != tx {
		t.Errorf("connFrom: got root handle, want transaction")
	}
}

func TestWithinTransactionReusesOuter(t *testing.T) {
	db := dryRun(t)
	tx := db.Session(&gorm.Session{})
	ctx := context.WithValue(context.Background(), txKey{}, tx)

	var inner context.Context
	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		inner = ctx
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTransaction: %v", err)
	}
	if inner != ctx {
		t.Errorf("nested transaction: got new context, want the outer one")
	}
}
