// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within
// a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping
// the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// randomized per call, so hashing the same input twice yields different
	// digests.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash using the salt
	// embedded in the hash. A malformed stored hash fails closed: the result
	// is false, indistinguishable from a wrong password.
	Check(password, hash string) bool
}
