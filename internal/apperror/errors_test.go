package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromStore_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_google_ad_tags_tag"}
	err := FromStore(fmt.Errorf("insert: %w", pgErr))
	if !IsReferential(err) {
		t.Fatalf("err=%v want referential", err)
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatalf("err=%v not an *Error", err)
	}
	if appErr.Message != `constraint fk_google_ad_tags_tag violated` {
		t.Fatalf("message=%q", appErr.Message)
	}
}

func TestFromStore_PassthroughAndNil(t *testing.T) {
	if FromStore(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	plain := errors.New("connection reset")
	if got := FromStore(plain); got != plain {
		t.Fatalf("got=%v want passthrough", got)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("google ad", "abc")
	if !IsNotFound(err) {
		t.Fatalf("err=%v want not-found", err)
	}
	if err.Error() != `google ad "abc" not found` {
		t.Fatalf("message=%q", err.Error())
	}
	if IsBadInput(err) || IsReferential(err) {
		t.Fatalf("kind leaked")
	}
}
