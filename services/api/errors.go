package api

import "errors"

var (
	// ErrTokenNotFound means no active access-token row matches the value.
	ErrTokenNotFound = errors.New("access token not found")
	// ErrTokenExpired means the row exists and is active but is past expiry.
	ErrTokenExpired = errors.New("access token expired")
	// ErrInvalidTTL rejects non-positive token lifetimes at issuance.
	ErrInvalidTTL = errors.New("token ttl must be a positive number of days")
)

// clientTokenMessage is the single user-facing message for both invalid and
// expired tokens. Collapsing the two hides which gate failed from the caller.
const clientTokenMessage = "invalid or expired access token"
