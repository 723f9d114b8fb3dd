package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNotFound(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"invalid uuid", &pgconn.PgError{Code: "22P02"}, ErrNotFound},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, nil},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := notFound(tt.in)
			switch {
			case tt.name == "unique violation":
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) || pgErr.Code != "23505" {
					t.Errorf("expected the original pg error, got %v", got)
				}
			case !errors.Is(got, tt.want) && got != tt.want:
				t.Errorf("notFound(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
