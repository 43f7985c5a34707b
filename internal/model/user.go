package model

import "time"

// Account roles as stored in users.user_type. Admin accounts are created by
// operators directly in the database; self-service sign-up only ever
// produces RoleUser or RoleWorker.
const (
	RoleUser   = "user"
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

// User represents a row of the `users` table. PasswordHash holds the bcrypt
// digest; the plaintext password never leaves the auth service.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, normalized (lower-case, trimmed) email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name provided at sign-up.
//  Role         – one of RoleUser, RoleWorker, RoleAdmin.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	Role         string    // users.user_type
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
