package principal

// PasswordHasher hashes and verifies account passwords. Verify returns the
// same error for every mismatch cause.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	// NeedsRehash reports whether hash was produced with other parameters
	// than Hash currently uses
	NeedsRehash(hash string) bool
}
