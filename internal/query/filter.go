package query

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Fragment is one predicate to conjoin onto a listing query: a SQL expression
// with its bound parameters. Keeping predicates as data instead of builder
// callbacks lets the same list drive the key query, the count query and the
// unit tests.
type Fragment struct {
	Expr string
	Args []any
}

// AdFilters is the typed filter bag parsed from the listing query string.
// Every dimension is optional; an empty slice or nil pointer contributes no
// predicate. Values within one dimension are OR'ed, dimensions are AND'ed.
type AdFilters struct {
	Tags      []string
	Bots      []string
	Genders   []string
	Political []int64
	BotTypes  []string
	AdTypes   []string
	StartDate *time.Time
	EndDate   *time.Time
}

// AdColumns maps filter dimensions onto the column expressions of a concrete
// source. A dimension whose column is left empty is ignored even when the
// filter carries values, so one builder serves both ad shapes.
type AdColumns struct {
	TagName      string
	BotID        string
	BotGender    string
	BotPolitical string
	BotType      string
	AdType       string
	CreatedAt    string
}

// Fragments renders the filter bag against a column map. Text dimensions
// match case-insensitively via ILIKE ANY, enumerated and ordinal dimensions
// via = ANY, and the date bounds are inclusive.
func (f AdFilters) Fragments(cols AdColumns) []Fragment {
	frags := make([]Fragment, 0, 8)
	if len(f.Tags) > 0 && cols.TagName != "" {
		frags = append(frags, Fragment{
			Expr: cols.TagName + " ILIKE ANY(?)",
			Args: []any{pq.Array(f.Tags)},
		})
	}
	if len(f.Bots) > 0 && cols.BotID != "" {
		frags = append(frags, Fragment{
			Expr: cols.BotID + " = ANY(?)",
			Args: []any{pq.Array(f.Bots)},
		})
	}
	if len(f.Genders) > 0 && cols.BotGender != "" {
		frags = append(frags, Fragment{
			Expr: cols.BotGender + " ILIKE ANY(?)",
			Args: []any{pq.Array(f.Genders)},
		})
	}
	if len(f.Political) > 0 && cols.BotPolitical != "" {
		frags = append(frags, Fragment{
			Expr: cols.BotPolitical + " = ANY(?)",
			Args: []any{pq.Array(f.Political)},
		})
	}
	if len(f.BotTypes) > 0 && cols.BotType != "" {
		lowered := make([]string, len(f.BotTypes))
		for i, v := range f.BotTypes {
			lowered[i] = strings.ToLower(v)
		}
		frags = append(frags, Fragment{
			Expr: "LOWER(" + cols.BotType + ") = ANY(?)",
			Args: []any{pq.Array(lowered)},
		})
	}
	if len(f.AdTypes) > 0 && cols.AdType != "" {
		frags = append(frags, Fragment{
			Expr: cols.AdType + " = ANY(?)",
			Args: []any{pq.Array(f.AdTypes)},
		})
	}
	if f.StartDate != nil && cols.CreatedAt != "" {
		frags = append(frags, Fragment{
			Expr: cols.CreatedAt + " >= ?",
			Args: []any{*f.StartDate},
		})
	}
	if f.EndDate != nil && cols.CreatedAt != "" {
		frags = append(frags, Fragment{
			Expr: cols.CreatedAt + " <= ?",
			Args: []any{*f.EndDate},
		})
	}
	return frags
}
