package calendarx

import (
	"time"

	"github.com/uptrace/bun"
)

// TaskStatus is the workflow state of a task
type TaskStatus = string

const (
	// StatusTodo is a task not started yet
	StatusTodo TaskStatus = "todo"
	// StatusInProgress is a task being worked on
	StatusInProgress TaskStatus = "in_progress"
	// StatusDone is a completed task
	StatusDone TaskStatus = "done"
	// StatusOverdue is a task past its date without completion
	StatusOverdue TaskStatus = "overdue"
)

// ParseTaskStatus reports whether s is a known status
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusOverdue:
		return s, true
	}
	return "", false
}

// User is the user model. Email uniqueness is enforced by the storage
// layer with an exact, case-sensitive match.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Task is the calendar/todo entry, always scoped to its owning user.
// Dates and day times travel as ISO strings ("2006-01-02", "15:04") so
// lexicographic ordering matches chronological ordering in queries.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:tsk"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Title         string     `bun:"title,notnull" json:"title"`
	Description   *string    `bun:"description" json:"description"`
	TaskDate      string     `bun:"task_date,notnull" json:"task_date"`
	StartTime     *string    `bun:"start_time" json:"start_time"`
	EndTime       *string    `bun:"end_time" json:"end_time"`
	TagName       *string    `bun:"tag_name" json:"tag_name"`
	TagColor      *string    `bun:"tag_color" json:"tag_color"`
	Status        TaskStatus `bun:"status,notnull,default:'todo'" json:"status"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
