package calendarx_test

import (
	"context"
	"time"

	"github.com/goliatone/calendarx"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// testConfig satisfies calendarx.Config with stable values for tests
type testConfig struct {
	signingKey    string
	signingMethod string
	tokenTTL      time.Duration
	issuer        string
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey:    "test-signing-key",
		signingMethod: "HS256",
		tokenTTL:      time.Hour,
	}
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key"
	}
	return c.signingKey
}

func (c testConfig) GetSigningMethod() string   { return c.signingMethod }
func (c testConfig) GetContextKey() string      { return "current_user" }
func (c testConfig) GetTokenTTL() time.Duration { return c.tokenTTL }
func (c testConfig) GetIssuer() string          { return c.issuer }
func (c testConfig) GetAuthScheme() string      { return "Bearer" }

// TestIdentity implements calendarx.Identity
type TestIdentity struct {
	id    int64
	email string
}

func (t TestIdentity) ID() int64     { return t.id }
func (t TestIdentity) Email() string { return t.email }

// MockUserStore implements calendarx.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*calendarx.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*calendarx.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUsers implements calendarx.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*calendarx.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*calendarx.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *calendarx.User) (*calendarx.User, error) {
	args := m.Called(ctx, record)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *calendarx.User) (*calendarx.User, error) {
	args := m.Called(ctx, tx, record)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthenticator implements calendarx.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Register(ctx context.Context, email, password string) (*calendarx.User, error) {
	args := m.Called(ctx, email, password)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(token string) (calendarx.Session, error) {
	args := m.Called(token)
	if session, ok := args.Get(0).(calendarx.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) IdentityFromSession(ctx context.Context, session calendarx.Session) (*calendarx.User, error) {
	args := m.Called(ctx, session)
	if user, ok := args.Get(0).(*calendarx.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockIdentityProvider implements calendarx.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (calendarx.Identity, error) {
	args := m.Called(ctx, email, password)
	if identity, ok := args.Get(0).(calendarx.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id int64) (calendarx.Identity, error) {
	args := m.Called(ctx, id)
	if identity, ok := args.Get(0).(calendarx.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}
