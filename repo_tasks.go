package calendarx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// TaskFilter narrows a task listing. Zero values mean "no constraint".
// Dates are ISO strings so range comparisons happen in the database.
type TaskFilter struct {
	Status   TaskStatus
	DateFrom string
	DateTo   string
}

// TaskPatch carries the fields of a partial update; nil pointers leave the
// stored value untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	TaskDate    *string
	StartTime   *string
	EndTime     *string
	TagName     *string
	TagColor    *string
	Status      *TaskStatus
}

// Tasks is the task store. Every operation is scoped by the owning user
// id; a task belonging to someone else is indistinguishable from a task
// that does not exist.
type Tasks interface {
	List(ctx context.Context, userID int64, filter TaskFilter) ([]*Task, error)
	GetOwned(ctx context.Context, id, userID int64) (*Task, error)
	Create(ctx context.Context, record *Task) (*Task, error)
	Update(ctx context.Context, id, userID int64, patch TaskPatch) (*Task, error)
	UpdateStatus(ctx context.Context, id, userID int64, status TaskStatus) (*Task, error)
	Delete(ctx context.Context, id, userID int64) error
}

type tasks struct {
	db *bun.DB
}

var _ Tasks = (*tasks)(nil)

func NewTasksRepository(db *bun.DB) Tasks {
	return &tasks{db: db}
}

func (r *tasks) List(ctx context.Context, userID int64, filter TaskFilter) ([]*Task, error) {
	var records []*Task

	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("?TableAlias.status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		q = q.Where("?TableAlias.task_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("?TableAlias.task_date <= ?", filter.DateTo)
	}

	err := q.
		Order("task_date ASC").
		Order("start_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list tasks")
	}

	if records == nil {
		records = []*Task{}
	}

	return records, nil
}

func (r *tasks) GetOwned(ctx context.Context, id, userID int64) (*Task, error) {
	record := &Task{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query task")
	}

	return record, nil
}

func (r *tasks) Create(ctx context.Context, record *Task) (*Task, error) {
	if record.Status == "" {
		record.Status = StatusTodo
	}

	now := time.Now().UTC()
	if record.CreatedAt == nil {
		record.CreatedAt = &now
	}
	if record.UpdatedAt == nil {
		record.UpdatedAt = &now
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create task")
	}

	return record, nil
}

func (r *tasks) Update(ctx context.Context, id, userID int64, patch TaskPatch) (*Task, error) {
	record, err := r.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	applyTaskPatch(record, patch)

	now := time.Now().UTC()
	record.UpdatedAt = &now

	_, err = r.db.NewUpdate().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not update task")
	}

	return record, nil
}

func (r *tasks) UpdateStatus(ctx context.Context, id, userID int64, status TaskStatus) (*Task, error) {
	return r.Update(ctx, id, userID, TaskPatch{Status: &status})
}

func (r *tasks) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.NewDelete().
		Model((*Task)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not delete task")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func applyTaskPatch(record *Task, patch TaskPatch) {
	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Description != nil {
		record.Description = patch.Description
	}
	if patch.TaskDate != nil {
		record.TaskDate = *patch.TaskDate
	}
	if patch.StartTime != nil {
		record.StartTime = patch.StartTime
	}
	if patch.EndTime != nil {
		record.EndTime = patch.EndTime
	}
	if patch.TagName != nil {
		record.TagName = patch.TagName
	}
	if patch.TagColor != nil {
		record.TagColor = patch.TagColor
	}
	if patch.Status != nil {
		record.Status = *patch.Status
	}
}
