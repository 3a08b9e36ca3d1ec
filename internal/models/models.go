// Package models contains the shared record types and the error taxonomy
// used by the storage, service and router layers.
package models

import "errors"

// URLRecord is a single shortened URL.
// ID is the short key, OwnerID is the creating user's ID and never changes.
type URLRecord struct {
	ID      string
	OwnerID string
	LongURL string
}

// ErrFieldsRequired is returned when a required form field is empty.
var ErrFieldsRequired = errors.New("please fill out all the forms")

// ErrEmailNotRegistered is returned on login with an unknown email.
var ErrEmailNotRegistered = errors.New("that email isn't registered")

// ErrWrongCredentials is returned when the password does not match the stored hash.
var ErrWrongCredentials = errors.New("email and password do not match")

// ErrEmailTaken is returned on registration with an already registered email.
var ErrEmailTaken = errors.New("that email is already registered")

// ErrURLNotFound is returned when the referenced short key is absent from the storage.
var ErrURLNotFound = errors.New("that url does not exist")

// ErrNotLoggedIn is returned when an owner-gated operation is attempted
// without a session that resolves to an existing user.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrNotOwner is returned when the resolved user is not the record's owner.
var ErrNotOwner = errors.New("no permission")
