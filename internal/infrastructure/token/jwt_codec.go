package token

import (
	"errors"
	"strconv"
	"time"

	usecase "gamevault/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret is returned when a codec is constructed without a
	// signing secret. Operating without one is a fatal misconfiguration.
	ErrMissingSecret = errors.New("token signing secret is required")
	// ErrInvalidTTL rejects non-positive token lifetimes.
	ErrInvalidTTL = errors.New("token ttl must be positive")
	// ErrMissingClaims means a token parsed fine but lacks required
	// identity claims.
	ErrMissingClaims = errors.New("token is missing required claims")
)

// Codec mints and verifies HS256 bearer tokens. Minting and verification
// are pure signature math: the codec holds no mutable state and is safe
// for concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// Config carries the immutable token settings. It is read once at
// construction; the codec never consults configuration at call time.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// NewCodec constructs a codec, failing fast on unusable configuration.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TTL <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Codec{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
		now:      time.Now,
	}, nil
}

// Ensure Codec implements the usecase interface.
var _ usecase.TokenCodec = (*Codec)(nil)

// claims is the wire shape of the token payload. The subject id travels
// as the string claim "id" for interoperability with existing clients.
type claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c claims) identity() (usecase.Identity, error) {
	if c.UserID == "" || c.Name == "" || c.Email == "" {
		return usecase.Identity{}, ErrMissingClaims
	}
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil {
		return usecase.Identity{}, ErrMissingClaims
	}
	return usecase.Identity{
		UserID: id,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
	}, nil
}

// VerifiedToken is the handle returned by Check. Claims used for trust
// decisions are only ever read off this handle, so callers cannot extract
// an identity without the signature and lifetime having been verified.
type VerifiedToken struct {
	identity  usecase.Identity
	expiresAt time.Time
}

// Identity returns the verified identity claims.
func (t *VerifiedToken) Identity() usecase.Identity {
	return t.identity
}

// ExpiresAt returns the token expiry instant.
func (t *VerifiedToken) ExpiresAt() time.Time {
	return t.expiresAt
}

// Mint signs a token embedding the identity claims plus issuer, audience
// and expiry. An identity without a role is minted as "Common".
func (c *Codec) Mint(identity usecase.Identity) (string, time.Time, error) {
	role := identity.Role
	if role == "" {
		role = "Common"
	}

	now := c.now().UTC()
	expiresAt := now.Add(c.ttl)
	tokenClaims := claims{
		UserID: strconv.FormatInt(identity.UserID, 10),
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Check fully verifies a token (signature, issuer, audience, expiry with
// zero leeway, required claims) and returns a handle to its identity.
func (c *Codec) Check(tokenString string) (*VerifiedToken, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, err
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	identity, err := tokenClaims.identity()
	if err != nil {
		return nil, err
	}
	if identity.Role == "" {
		return nil, ErrMissingClaims
	}

	return &VerifiedToken{
		identity:  identity,
		expiresAt: tokenClaims.ExpiresAt.Time,
	}, nil
}

// Verify reports whether the token is authentic and current. It is a pure
// predicate: every failure mode collapses to false so callers cannot
// distinguish which check rejected the token.
func (c *Codec) Verify(tokenString string) bool {
	_, err := c.Check(tokenString)
	return err == nil
}

// CheckIdentity is the interface-friendly form of Check.
func (c *Codec) CheckIdentity(tokenString string) (usecase.Identity, error) {
	verified, err := c.Check(tokenString)
	if err != nil {
		return usecase.Identity{}, err
	}
	return verified.Identity(), nil
}

// PeekIdentity decodes the payload without verifying the signature. It
// exists for display purposes on tokens that already passed Check; it
// must never drive an authorization decision. A missing role claim
// defaults to "Common"; missing id, name or email is an error.
func (c *Codec) PeekIdentity(tokenString string) (usecase.Identity, error) {
	var tokenClaims claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, &tokenClaims); err != nil {
		return usecase.Identity{}, err
	}
	identity, err := tokenClaims.identity()
	if err != nil {
		return usecase.Identity{}, err
	}
	if identity.Role == "" {
		identity.Role = "Common"
	}
	return identity, nil
}
