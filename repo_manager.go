package calendarx

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Tasks() Tasks
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
}

type mngr struct {
	db    *bun.DB
	users Users
	tasks Tasks
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
		tasks: NewTasksRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return goerrors.New("repository manager requires a database", goerrors.CategoryInternal)
	}
	if m.users == nil {
		return goerrors.New("repository users should be initialized", goerrors.CategoryInternal)
	}
	if m.tasks == nil {
		return goerrors.New("repository tasks should be initialized", goerrors.CategoryInternal)
	}
	return nil
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Tasks() Tasks {
	return m.tasks
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, fn)
}
