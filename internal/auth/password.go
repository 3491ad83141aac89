// Package auth implements password hashing and verification for account
// credentials. Hashes are bcrypt in its self-describing form: the cost and
// the per-password random salt are embedded in the stored string, and
// verification uses bcrypt's constant-time compare.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash for pw. A cost outside the valid
// bcrypt range selects bcrypt.DefaultCost.
func HashPassword(pw string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// VerifyPassword reports whether pw matches the stored bcrypt hash.
func VerifyPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
