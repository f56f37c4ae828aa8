package query

import (
	"context"
	"strings"
)

// OrderColumn is one ORDER BY term of a key query. Columns listed here must
// be selectable alongside the key so DISTINCT stays valid.
type OrderColumn struct {
	Column string
	Desc   bool
}

// KeyQuery describes phase 1 of a listing: which table holds the primary
// keys, which joins the predicates need, and how the page is ordered. The
// same query (minus the window) drives the total count.
type KeyQuery struct {
	Table     string
	Key       string
	Joins     []string
	Fragments []Fragment
	Order     []OrderColumn
}

// SelectClause returns the distinct key projection for phase 1. Order columns
// other than the key itself are included because Postgres requires ORDER BY
// expressions to appear in a DISTINCT select list.
func (q KeyQuery) SelectClause() string {
	var b strings.Builder
	b.WriteString("DISTINCT ")
	b.WriteString(q.Key)
	b.WriteString(" AS record_key")
	for _, oc := range q.Order {
		if oc.Column == q.Key {
			continue
		}
		b.WriteString(", ")
		b.WriteString(oc.Column)
	}
	return b.String()
}

func (q KeyQuery) OrderClause() string {
	terms := make([]string, 0, len(q.Order))
	for _, oc := range q.Order {
		dir := " ASC"
		if oc.Desc {
			dir = " DESC"
		}
		terms = append(terms, oc.Column+dir)
	}
	return strings.Join(terms, ", ")
}

// KeyStore is the slice of the persistence contract the executor needs:
// resolve an ordered window of matching keys, and count all matches.
type KeyStore interface {
	FindKeys(ctx context.Context, q KeyQuery, offset, limit int) ([]string, error)
	CountKeys(ctx context.Context, q KeyQuery) (int64, error)
}

// Window is the requested pagination window. Callers validate negativity
// before reaching the executor.
type Window struct {
	Offset int
	Limit  int
}

// Result carries the ordered phase-1 key page plus the unbounded match
// count. RecordCount is the page length, TotalCount ignores the window.
type Result struct {
	Keys       []string
	TotalCount int64
}

func (r Result) RecordCount() int {
	return len(r.Keys)
}

// Run executes phase 1 of a listing: the distinct ordered key page under the
// window, then the independent count with the same predicates. Selecting only
// keys in phase 1 is what keeps one-to-many joins from duplicating rows in
// the page; hydration happens afterwards against exactly these keys. The
// count still runs when the page is empty because link generation needs the
// total. Store errors propagate unchanged; nothing is retried.
func Run(ctx context.Context, store KeyStore, q KeyQuery, w Window) (Result, error) {
	keys, err := store.FindKeys(ctx, q, w.Offset, w.Limit)
	if err != nil {
		return Result{}, err
	}
	total, err := store.CountKeys(ctx, q)
	if err != nil {
		return Result{}, err
	}
	return Result{Keys: keys, TotalCount: total}, nil
}

// SortByKeys reorders hydrated rows into phase-1 key order. Membership in an
// IN clause does not preserve order, so phase 2 results arrive shuffled.
// Rows without a matching key are dropped.
func SortByKeys[T any](items []T, key func(T) string, keys []string) []T {
	byKey := make(map[string]T, len(items))
	for _, item := range items {
		byKey[key(item)] = item
	}
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		if item, ok := byKey[k]; ok {
			out = append(out, item)
		}
	}
	return out
}
