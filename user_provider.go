package calendarx

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UserStore is the slice of the identity store the provider needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// UserProvider resolves identities against the user store
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user by email, compare the password against
// the stored hash, and return the identity. An unknown email and a wrong
// password produce the same error so callers cannot enumerate accounts.
func (u UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByID resolves an identity by its numeric id
func (u UserProvider) FindIdentityByID(ctx context.Context, id int64) (Identity, error) {
	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id    int64
	email string
}

func (a authIdentity) ID() int64     { return a.id }
func (a authIdentity) Email() string { return a.email }

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:    user.ID,
		email: user.Email,
	}
}
