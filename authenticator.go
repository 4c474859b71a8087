package calendarx

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auther combines the credential hasher, the token service, and the
// identity store into the authentication entry points.
type Auther struct {
	provider     IdentityProvider
	users        Users
	tokenTTL     time.Duration
	logger       Logger
	tokenService TokenService
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, users Users, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetSigningMethod(),
		opts.GetTokenTTL(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		users:        users,
		tokenTTL:     opts.GetTokenTTL(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the email/password pair and issues a signed token whose
// subject is the identity id serialized as a string.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Debug("Login verify identity failed", "error", err)
		return "", err
	}

	if identity == nil {
		s.logger.Error("Login identity is nil")
		return "", ErrIdentityNotFound
	}

	token, err := s.tokenService.Generate(identity, s.tokenTTL)
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

// Register hashes the password and creates a new user record. A duplicate
// email fails with ErrDuplicateEmail before anything is written.
func (s *Auther) Register(ctx context.Context, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user, err := s.users.Create(ctx, &User{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SessionFromToken validates a raw token and lifts its claims into a
// session object. All decode failures surface as auth errors, never as
// partially populated sessions.
func (s *Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Debug("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

// IdentityFromSession resolves the session subject against the store. A
// user deleted after the token was minted fails resolution even though the
// token itself is still validly signed.
func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (*User, error) {
	id, err := parseSubject(session.GetUserID())
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("IdentityFromSession lookup failed", "error", err, "user_id", id)
		return nil, err
	}

	return user, nil
}
