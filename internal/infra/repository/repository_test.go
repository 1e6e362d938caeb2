package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

func TestTranslate(t *testing.T) {
	if translate(nil) != nil {
		t.Fatalf("nil should stay nil")
	}

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"wrapped not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, domain.ErrConstraintViolation},
		{"foreign key", gorm.ErrForeignKeyViolated, domain.ErrConstraintViolation},
		{"unique pg", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}, domain.ErrConstraintViolation},
		{"check pg", &pgconn.PgError{Code: "23514", ConstraintName: "chk_testimonials_rating"}, domain.ErrConstraintViolation},
	}
	for _, tc := range cases {
		if got := translate(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	serialization := &pgconn.PgError{Code: "40001"}
	got := translate(serialization)
	if errors.Is(got, domain.ErrConstraintViolation) || errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("non integrity errors must stay internal, got %v", got)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]any{"user_id": 1, "published": true, "email": "x"})
	want := []string{"email", "published", "user_id"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected order %v", keys)
		}
	}
}
