package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/outbound-tracker/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "action", "a1"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan row: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), domain.ErrAlreadyExists},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "actions_revenue_check"}, domain.ErrValidation},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
		{"canceled", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.in, "action", "a1")
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want wrapping %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapError_ContextErrorsAreNotDomainErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(in, "action", "a1")
		if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrValidation) {
			t.Errorf("MapError(%v) mapped to a domain error: %v", in, got)
		}
	}
}

func TestMapError_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	got := MapError(pgErr, "action", "a1")

	var unwrapped *pgconn.PgError
	if !errors.As(got, &unwrapped) {
		t.Errorf("MapError(unknown PgError) does not wrap *pgconn.PgError: %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrAlreadyExists) || errors.Is(got, domain.ErrValidation) {
		t.Error("unknown PgError should not map to a domain error")
	}

	plain := errors.New("something unexpected")
	if got := MapError(plain, "action", "a1"); got.Error() != "action a1: something unexpected" {
		t.Errorf("MapError(plain).Error() = %q", got.Error())
	}
}
