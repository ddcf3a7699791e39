package application

import "context"

// PasswordHasher is the credential verifier used by AccountService.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash; malformed hashes yield false.
	Verify(plain, hash string) bool
}

// JobPublisher enqueues background jobs (welcome emails).
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
