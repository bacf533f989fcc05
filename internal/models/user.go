package models

// User represents a registered account.
type User struct {
	// Username is the unique, case-sensitive identifier. It doubles as the
	// ledger scope: every transaction belongs to exactly one username.
	Username string `json:"-"`

	// PasswordHash is the bcrypt hash of the account password. The original
	// application stored passwords in the clear under a "password" key; the
	// tag keeps that key so migrated files stay loadable, but the value
	// written by this implementation is always a hash.
	PasswordHash string `json:"password"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at,omitempty"`
}
