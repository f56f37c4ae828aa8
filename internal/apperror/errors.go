// Package apperror classifies failures so the HTTP layer can map them to
// status codes without inspecting store internals.
package apperror

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindBadInput
	KindReferential
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity, naming the kind and lookup key.
func NotFound(entity, key string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %q not found", entity, key)}
}

func BadInput(message string, err error) error {
	return &Error{Kind: KindBadInput, Message: message, Err: err}
}

// FromStore classifies a persistence error. Foreign-key violations become
// referential errors carrying the constraint name; anything else passes
// through verbatim so the driver's message reaches the client unaltered.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return &Error{
			Kind:    KindReferential,
			Message: fmt.Sprintf("constraint %s violated", pgErr.ConstraintName),
			Err:     err,
		}
	}
	return err
}

func is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsNotFound(err error) bool {
	return is(err, KindNotFound)
}

func IsBadInput(err error) bool {
	return is(err, KindBadInput)
}

func IsReferential(err error) bool {
	return is(err, KindReferential)
}
