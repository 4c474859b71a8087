package calendarx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the identity store adapter. Lookups that find nothing return a
// CategoryNotFound error; absence is a definitive answer, not a fault.
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	DeleteByID(ctx context.Context, id int64) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return record, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by id")
	}

	return record, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

// CreateTx inserts a new user. The duplicate check and the insert run
// against the same bun.IDB so callers can wrap both in one transaction.
func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	exists, err := tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", record.Email).
		Exists(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}

	if exists {
		return nil, ErrDuplicateEmail
	}

	if record.CreatedAt == nil {
		now := time.Now().UTC()
		record.CreatedAt = &now
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		// The unique index backs up the pre-check under concurrent registration.
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return record, nil
}

func (r *users) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrIdentityNotFound
	}

	return nil
}
