package calendarx_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/calendarx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	t.Run("Valid credentials issue a decodable token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", ctx, "user@example.com", "password123").
			Return(TestIdentity{id: 42, email: "user@example.com"}, nil)

		auther := calendarx.NewAuthenticator(provider, new(MockUsers), cfg)

		token, err := auther.Login(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "42", claims.Subject())
		assert.WithinDuration(t, time.Now().Add(cfg.tokenTTL), claims.Expires(), 5*time.Second)

		provider.AssertExpectations(t)
	})

	t.Run("Verification failure yields no token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", ctx, mock.Anything, mock.Anything).
			Return(nil, calendarx.ErrMismatchedHashAndPassword)

		auther := calendarx.NewAuthenticator(provider, new(MockUsers), cfg)

		token, err := auther.Login(ctx, "user@example.com", "nope")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, calendarx.ErrMismatchedHashAndPassword)
	})

	t.Run("Nil identity yields no token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		provider.On("VerifyIdentity", ctx, mock.Anything, mock.Anything).
			Return(nil, nil)

		auther := calendarx.NewAuthenticator(provider, new(MockUsers), cfg)

		token, err := auther.Login(ctx, "user@example.com", "password123")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, calendarx.ErrIdentityNotFound)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	t.Run("Stores a hash, not the password", func(t *testing.T) {
		users := new(MockUsers)
		users.On("Create", ctx, mock.MatchedBy(func(u *calendarx.User) bool {
			return u.Email == "new@example.com" &&
				u.PasswordHash != "" &&
				u.PasswordHash != "password123" &&
				calendarx.ComparePasswordAndHash("password123", u.PasswordHash) == nil
		})).Return(&calendarx.User{ID: 1, Email: "new@example.com"}, nil)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.Register(ctx, "new@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)

		users.AssertExpectations(t)
	})

	t.Run("Duplicate email passes through", func(t *testing.T) {
		users := new(MockUsers)
		users.On("Create", ctx, mock.Anything).Return(nil, calendarx.ErrDuplicateEmail)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.Register(ctx, "dupe@example.com", "password123")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, calendarx.ErrDuplicateEmail)
	})

	t.Run("Empty password never reaches the store", func(t *testing.T) {
		users := new(MockUsers)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.Register(ctx, "new@example.com", "")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, calendarx.ErrNoEmptyString)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestIdentityFromSession(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	t.Run("Resolves the subject against the store", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByID", ctx, int64(42)).Return(&calendarx.User{
			ID:    42,
			Email: "user@example.com",
		}, nil)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.IdentityFromSession(ctx, &calendarx.SessionObject{UserID: "42"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("Non numeric subject", func(t *testing.T) {
		users := new(MockUsers)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.IdentityFromSession(ctx, &calendarx.SessionObject{UserID: "not-an-id"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, calendarx.ErrUnableToMapClaims)
	})

	t.Run("User deleted after token issue", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByID", ctx, int64(42)).Return(nil, calendarx.ErrIdentityNotFound)

		auther := calendarx.NewAuthenticator(calendarx.NewUserProvider(users), users, cfg)

		user, err := auther.IdentityFromSession(ctx, &calendarx.SessionObject{UserID: "42"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, calendarx.ErrIdentityNotFound)
	})
}
