package model

// User represents an account.  Username is expected to be unique, which
// callers verify before creating a user.  PasswordHash holds a bcrypt
// hash and is never serialized.
type User struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
