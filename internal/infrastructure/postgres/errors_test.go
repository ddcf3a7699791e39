package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
)

func TestPgError(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: uqUsersUsername})
	code, constraint, ok := pgError(wrapped)
	if !ok || code != uniqueViolation || constraint != uqUsersUsername {
		t.Fatalf("got %q %q %v", code, constraint, ok)
	}
	if _, _, ok := pgError(errors.New("plain")); ok {
		t.Fatal("plain error should not be a pg error")
	}
}

func TestMapUserError(t *testing.T) {
	err := mapUserError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: uqUsersUsername})
	if !errors.Is(err, apperr.ErrConflict) || err.Error() != "Username already exists" {
		t.Fatalf("username violation got %v", err)
	}
	err = mapUserError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "uq_users_email"})
	if !errors.Is(err, apperr.ErrConflict) || err.Error() != "Email already exists" {
		t.Fatalf("email violation got %v", err)
	}
	if err := mapUserError(errors.New("boom")); apperr.KindOf(err) != apperr.KindUnknown {
		t.Fatalf("other errors should stay unclassified, got %v", err)
	}
}

func TestValidID(t *testing.T) {
	if !validID("6f1c2a1e-8d8f-4d5e-9b7a-0a1b2c3d4e5f") {
		t.Fatal("uuid rejected")
	}
	for _, id := range []string{"", "42", "abc"} {
		if validID(id) {
			t.Errorf("%q accepted", id)
		}
	}
}

// Malformed ids never reach the pool, so a nil pool is enough here.
func TestRepositories_MalformedIDsAreMissing(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(nil)
	products := NewProductRepository(nil)
	favorites := NewFavoriteRepository(nil)

	if u, err := users.FindByID(ctx, "nope"); u != nil || err != nil {
		t.Fatalf("user FindByID got %v, %v", u, err)
	}
	if p, err := products.FindByID(ctx, "nope"); p != nil || err != nil {
		t.Fatalf("product FindByID got %v, %v", p, err)
	}
	if ok, err := favorites.Exists(ctx, "nope", "nope"); ok || err != nil {
		t.Fatalf("Exists got %v, %v", ok, err)
	}
	if _, err := favorites.Add(ctx, "nope", "nope"); err == nil || err.Error() != "User not found" {
		t.Fatalf("Add got %v", err)
	}
	if err := favorites.Remove(ctx, "nope", "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Remove got %v", err)
	}
	if n, err := favorites.CountForUser(ctx, "nope"); n != 0 || err != nil {
		t.Fatalf("CountForUser got %d, %v", n, err)
	}
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"lamp":   `%lamp%`,
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`c:\tmp`: `%c:\\tmp%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
