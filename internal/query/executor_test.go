package query

import (
	"context"
	"errors"
	"testing"
)

type stubKeyStore struct {
	keys       []string
	total      int64
	findErr    error
	countErr   error
	findCalls  int
	countCalls int
	lastOffset int
	lastLimit  int
}

func (s *stubKeyStore) FindKeys(_ context.Context, _ KeyQuery, offset, limit int) ([]string, error) {
	s.findCalls++
	s.lastOffset = offset
	s.lastLimit = limit
	return s.keys, s.findErr
}

func (s *stubKeyStore) CountKeys(context.Context, KeyQuery) (int64, error) {
	s.countCalls++
	return s.total, s.countErr
}

func TestRun_PassesWindowThrough(t *testing.T) {
	store := &stubKeyStore{keys: []string{"a", "b"}, total: 10}
	res, err := Run(context.Background(), store, KeyQuery{}, Window{Offset: 30, Limit: 2})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if store.lastOffset != 30 || store.lastLimit != 2 {
		t.Fatalf("window=%d/%d", store.lastOffset, store.lastLimit)
	}
	if res.RecordCount() != 2 || res.TotalCount != 10 {
		t.Fatalf("result=%+v", res)
	}
}

func TestRun_CountsEvenWhenPageEmpty(t *testing.T) {
	store := &stubKeyStore{keys: nil, total: 42}
	res, err := Run(context.Background(), store, KeyQuery{}, Window{Offset: 1000, Limit: 30})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if store.countCalls != 1 {
		t.Fatalf("countCalls=%d want 1", store.countCalls)
	}
	if res.RecordCount() != 0 || res.TotalCount != 42 {
		t.Fatalf("result=%+v", res)
	}
}

func TestRun_FindErrorStopsCount(t *testing.T) {
	store := &stubKeyStore{findErr: errors.New("boom")}
	_, err := Run(context.Background(), store, KeyQuery{}, Window{Limit: 30})
	if err == nil {
		t.Fatalf("expected error")
	}
	if store.countCalls != 0 {
		t.Fatalf("countCalls=%d want 0", store.countCalls)
	}
}

func TestRun_CountErrorPropagates(t *testing.T) {
	store := &stubKeyStore{keys: []string{"a"}, countErr: errors.New("boom")}
	if _, err := Run(context.Background(), store, KeyQuery{}, Window{Limit: 30}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSelectClause_IncludesOrderColumns(t *testing.T) {
	q := KeyQuery{
		Key: "google_ads.id",
		Order: []OrderColumn{
			{Column: "google_ads.created_at", Desc: true},
			{Column: "google_ads.id", Desc: true},
		},
	}
	want := "DISTINCT google_ads.id AS record_key, google_ads.created_at"
	if got := q.SelectClause(); got != want {
		t.Fatalf("select=%q want %q", got, want)
	}
	if got := q.OrderClause(); got != "google_ads.created_at DESC, google_ads.id DESC" {
		t.Fatalf("order=%q", got)
	}
}

func TestSortByKeys(t *testing.T) {
	type row struct{ id string }
	items := []row{{"c"}, {"a"}, {"b"}}
	out := SortByKeys(items, func(r row) string { return r.id }, []string{"a", "b", "c"})
	if len(out) != 3 || out[0].id != "a" || out[1].id != "b" || out[2].id != "c" {
		t.Fatalf("out=%+v", out)
	}
}

func TestSortByKeys_DropsUnknownKeys(t *testing.T) {
	type row struct{ id string }
	items := []row{{"a"}}
	out := SortByKeys(items, func(r row) string { return r.id }, []string{"missing", "a"})
	if len(out) != 1 || out[0].id != "a" {
		t.Fatalf("out=%+v", out)
	}
}
