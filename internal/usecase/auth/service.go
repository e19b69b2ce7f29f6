package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "gamevault/backend/internal/domain/auth"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Outcome classifies the result of a login attempt.
type Outcome int

const (
	// OutcomeSuccess means credentials matched and a token was minted.
	OutcomeSuccess Outcome = iota
	// OutcomeMissingCredentials means email or password was empty.
	OutcomeMissingCredentials
	// OutcomeInvalidCredentials covers unknown email and wrong password
	// alike.
	OutcomeInvalidCredentials
	// OutcomeInternalError means an unexpected fault was collapsed into a
	// generic failure. The transport never sees the underlying error.
	OutcomeInternalError
)

// UserSummary is the public slice of a user returned to clients.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Result is the transient outcome of a login attempt. It is never
// persisted.
type Result struct {
	Outcome   Outcome
	Token     string
	User      *UserSummary
	ExpiresAt time.Time
	Message   string
}

// Success reports whether the attempt produced a token.
func (r Result) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// Service coordinates authentication workflows between domain and
// infrastructure. It holds no per-request state; tokens are
// self-contained and verified independently.
type Service struct {
	users   domain.UserRepository
	tokens  TokenCodec
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenCodec, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Login validates credentials and mints a token. Unknown email and wrong
// password produce identical results so accounts cannot be enumerated;
// the detail is only logged server-side. Unexpected faults are collapsed
// into a generic failure rather than surfaced to the transport.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) Result {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		s.logger.Warn("login rejected: empty email or password")
		return Result{
			Outcome: OutcomeMissingCredentials,
			Message: "Email and password are required",
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn("login failed: unknown email", zap.String("email", email))
			return invalidCredentials()
		}
		s.logger.Error("login failed: user lookup error", zap.String("email", email), zap.Error(err))
		return internalFailure()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed: wrong password", zap.String("email", email))
		return invalidCredentials()
	}

	token, expiresAt, err := s.tokens.Mint(Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.RoleName,
	})
	if err != nil {
		s.logger.Error("login failed: token mint error", zap.String("email", email), zap.Error(err))
		return internalFailure()
	}

	s.logger.Info("login successful", zap.String("email", email), zap.Int64("user_id", user.ID))
	return Result{
		Outcome:   OutcomeSuccess,
		Token:     token,
		User:      &UserSummary{Name: user.Name, Email: user.Email},
		ExpiresAt: expiresAt,
		Message:   "Login successful",
	}
}

// ValidateToken reports whether a token is authentic and current. Empty
// input short-circuits to false without invoking the codec.
func (s *Service) ValidateToken(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	return s.tokens.Verify(token)
}

// CheckToken verifies a token and returns its identity claims for
// authorization decisions.
func (s *Service) CheckToken(token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, domain.ErrTokenInvalid
	}
	identity, err := s.tokens.CheckIdentity(token)
	if err != nil {
		return Identity{}, domain.ErrTokenInvalid
	}
	return identity, nil
}

// GetUserFromToken extracts the public user summary from a token without
// re-verifying the signature. Callers needing a trust guarantee must go
// through CheckToken; this exists to show "who you are" on tokens the
// gate already verified.
func (s *Service) GetUserFromToken(token string) *UserSummary {
	identity, err := s.tokens.PeekIdentity(token)
	if err != nil {
		s.logger.Debug("claim extraction failed", zap.Error(err))
		return nil
	}
	return &UserSummary{Name: identity.Name, Email: identity.Email}
}

// ChangePassword swaps the caller's password after re-verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	if currentPassword == "" || newPassword == "" {
		return errors.New("current and new passwords are required")
	}
	if currentPassword == newPassword {
		return domain.ErrPasswordUnchanged
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hashed), s.nowFunc().UTC())
}

func invalidCredentials() Result {
	return Result{
		Outcome: OutcomeInvalidCredentials,
		Message: "Invalid email or password.",
	}
}

func internalFailure() Result {
	return Result{
		Outcome: OutcomeInternalError,
		Message: "An error occurred during login",
	}
}
