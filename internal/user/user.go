// Package user defines the user model used throughout the application,
// particularly for authentication and user-specific URL ownership.
package user

// User represents a registered user.
// The record is immutable after registration.
type User struct {
	// ID is the unique identifier of the user, a short random key.
	ID string

	// Email is the registration email. At most one user exists per email.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}
