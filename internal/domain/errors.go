package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgUsernameTaken = "username is already taken"

	// Catalog errors
	ErrMsgInvalidCatalog = "invalid catalog"
	ErrMsgItemNotFound   = "item not found"
	ErrMsgItemNotOwned   = "item not owned"

	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Persistence errors
	ErrMsgPersistenceUnavailable = "persistence unavailable"

	// Social errors
	ErrMsgAlreadyFriends        = "already friends"
	ErrMsgFriendRequestExists   = "friend request already exists"
	ErrMsgFriendRequestNotFound = "friend request not found"
	ErrMsgSelfFriendRequest     = "cannot send a friend request to yourself"
	ErrMsgNotAuthorized         = "not authorized"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)

	// Catalog errors. ErrInvalidCatalog is a configuration bug and is
	// fatal at startup; it is never retried.
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)

	// ErrItemNotOwned rejects equipping a cosmetic that is not in the
	// user's inventory ledger.
	ErrItemNotOwned = errors.New(ErrMsgItemNotOwned)

	// Wallet errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Persistence errors. Recoverable by retrying the idempotent acquire
	// step; the coordinator does not roll back a debit on this error.
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)

	// Social errors
	ErrAlreadyFriends        = errors.New(ErrMsgAlreadyFriends)
	ErrFriendRequestExists   = errors.New(ErrMsgFriendRequestExists)
	ErrFriendRequestNotFound = errors.New(ErrMsgFriendRequestNotFound)
	ErrSelfFriendRequest     = errors.New(ErrMsgSelfFriendRequest)
	ErrNotAuthorized         = errors.New(ErrMsgNotAuthorized)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
