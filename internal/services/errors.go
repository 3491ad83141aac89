// Package services defines the business logic for accounts, memberships,
// and messages. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing prompts should be performed at the front
// end. Authentication failures and duplicate-registration failures are
// distinct values so a caller can prompt appropriately.
package services

import "errors"

// Account-related errors.
var (
	// ErrInvalidInput is returned when a required field is empty after
	// trimming.
	ErrInvalidInput = errors.New("required field is empty")

	// ErrDuplicateUsername indicates a registration attempt with a
	// username that is already taken.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrDuplicateEmail indicates a registration attempt with an email
	// address that is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnknownUser indicates that no account exists for the given
	// username.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidCredentials indicates that the account exists but the
	// supplied password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserHasData is returned when deleting an account that still owns
	// messages, memberships, files or reactions. Dependents must be
	// removed first.
	ErrUserHasData = errors.New("user still owns dependent rows")
)

// Membership- and message-related errors.
var (
	// ErrInvalidRoom indicates that the referenced room does not exist.
	ErrInvalidRoom = errors.New("room does not exist")

	// ErrInvalidUser indicates that the referenced user does not exist.
	ErrInvalidUser = errors.New("user does not exist")

	// ErrInvalidRole is returned when a membership role is outside the
	// allowed set (admin, member).
	ErrInvalidRole = errors.New("role must be admin or member")

	// ErrAlreadyMember is returned when a user attempts to join a room
	// they already belong to.
	ErrAlreadyMember = errors.New("user already joined this room")

	// ErrNotMember is returned when a role change targets a (user, room)
	// pair with no membership row.
	ErrNotMember = errors.New("user is not a member of this room")

	// ErrMessageNotFound indicates that the referenced message does not
	// exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrForbiddenAttachment is returned when a user attempts to attach
	// a file to a message they did not author.
	ErrForbiddenAttachment = errors.New("cannot attach a file to this message")
)

// ErrStoreUnavailable wraps storage-layer failures where the store itself
// is unreachable, as opposed to a statement the store rejected.
var ErrStoreUnavailable = errors.New("store unavailable")
