package auth

import "time"

// Identity is the typed claim set embedded in a token: who the subject
// is and which role gates apply. Claims are populated once at mint time;
// there is no runtime lookup by claim key name.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

// TokenCodec abstracts token minting and verification.
type TokenCodec interface {
	// Mint encodes the identity into a signed token with a fixed TTL.
	Mint(identity Identity) (token string, expiresAt time.Time, err error)
	// Verify reports token authenticity and currency as a pure predicate.
	Verify(token string) bool
	// CheckIdentity verifies the token and returns its identity claims.
	CheckIdentity(token string) (Identity, error)
	// PeekIdentity decodes claims without verification, for display only.
	PeekIdentity(token string) (Identity, error)
}
