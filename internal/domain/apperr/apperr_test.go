package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("User not found")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("NotFound should match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("NotFound should not match ErrConflict")
	}
	if err.Error() != "User not found" {
		t.Errorf("message want %q, got %q", "User not found", err.Error())
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("save user: %w", Conflict("Email already exists"))
	if got := KindOf(wrapped); got != KindConflict {
		t.Errorf("KindOf want %v, got %v", KindConflict, got)
	}
	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped conflict should match ErrConflict")
	}
}

func TestKindOf_Plain(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Errorf("KindOf want %v, got %v", KindUnknown, got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("KindOf(nil) want %v, got %v", KindUnknown, got)
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindNotFound:       "not_found",
		KindConflict:       "conflict",
		KindInvalidRequest: "invalid_request",
		KindUnauthorized:   "unauthorized",
		KindUnknown:        "unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d).String() want %q, got %q", k, want, k.String())
		}
	}
}
