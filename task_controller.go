package calendarx

import (
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

const (
	dateLayout    = "2006-01-02"
	dayTimeLayout = "15:04"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// TaskController exposes the user-scoped task CRUD endpoints
type TaskController struct {
	Logger Logger
	Repo   Tasks
	Auther Authenticator
	cfg    Config
}

func NewTaskController(repo Tasks, auther Authenticator, cfg Config) *TaskController {
	return &TaskController{
		Logger: defLogger{},
		Repo:   repo,
		Auther: auther,
		cfg:    cfg,
	}
}

func (t *TaskController) WithLogger(l Logger) *TaskController {
	if l != nil {
		t.Logger = l
	}
	return t
}

// RegisterTaskRoutes mounts the task endpoints behind the session gate
func RegisterTaskRoutes(app fiber.Router, controller *TaskController) {
	gate := Protected(controller.Auther, controller.cfg, controller.Logger)

	app.Get("/", gate, controller.Index)
	app.Post("/", gate, controller.Create)
	app.Get("/:id", gate, controller.Show)
	app.Put("/:id", gate, controller.Update)
	app.Patch("/:id/status", gate, controller.UpdateStatus)
	app.Delete("/:id", gate, controller.Delete)
}

// TaskCreateRequest payload
type TaskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TaskDate    string  `json:"task_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	TagName     *string `json:"tag_name"`
	TagColor    *string `json:"tag_color"`
	Status      string  `json:"status"`
}

// Validate will run validation rules
func (r TaskCreateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Description, validation.Length(0, 1000)),
			validation.Field(&r.TaskDate, validation.Required, validation.Date(dateLayout)),
			validation.Field(&r.StartTime, validation.Date(dayTimeLayout)),
			validation.Field(&r.EndTime, validation.Date(dayTimeLayout)),
			validation.Field(&r.TagName, validation.Length(0, 50)),
			validation.Field(&r.TagColor, validation.Match(hexColorRe)),
			validation.Field(&r.Status, validation.In(StatusTodo, StatusInProgress, StatusDone, StatusOverdue)),
		)
	}, "Invalid task payload")
}

// TaskUpdateRequest payload; omitted fields keep their stored values
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TaskDate    *string `json:"task_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	TagName     *string `json:"tag_name"`
	TagColor    *string `json:"tag_color"`
	Status      *string `json:"status"`
}

// Validate will run validation rules. Title, task date, and status are
// NilOrNotEmpty because ozzo skips the other rules on empty values; an
// explicit "" must not blank a field the model requires.
func (r TaskUpdateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
			validation.Field(&r.Description, validation.Length(0, 1000)),
			validation.Field(&r.TaskDate, validation.NilOrNotEmpty, validation.Date(dateLayout)),
			validation.Field(&r.StartTime, validation.Date(dayTimeLayout)),
			validation.Field(&r.EndTime, validation.Date(dayTimeLayout)),
			validation.Field(&r.TagName, validation.Length(0, 50)),
			validation.Field(&r.TagColor, validation.Match(hexColorRe)),
			validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(StatusTodo, StatusInProgress, StatusDone, StatusOverdue)),
		)
	}, "Invalid task payload")
}

// TaskStatusRequest payload for the status-only update
type TaskStatusRequest struct {
	Status string `json:"status"`
}

// Validate will run validation rules
func (r TaskStatusRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Status, validation.Required,
				validation.In(StatusTodo, StatusInProgress, StatusDone, StatusOverdue)),
		)
	}, "Invalid status payload")
}

// Index lists the current user's tasks with optional status and date
// range filters, ordered by task date then start time.
func (t *TaskController) Index(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	filter := TaskFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := ParseTaskStatus(raw)
		if !ok {
			return unprocessable(c, goerrors.New("Invalid status filter", goerrors.CategoryValidation))
		}
		filter.Status = status
	}

	records, err := t.Repo.List(c.UserContext(), user.ID, filter)
	if err != nil {
		t.Logger.Error("task list failed", "error", err, "user_id", user.ID)
		return err
	}

	return c.JSON(records)
}

// Create adds a new task owned by the current user
func (t *TaskController) Create(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	payload := new(TaskCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		t.Logger.Debug("task create parse payload failed", "error", err)
		return badRequest(c, "Failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	record := &Task{
		UserID:      user.ID,
		Title:       payload.Title,
		Description: payload.Description,
		TaskDate:    payload.TaskDate,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		TagName:     payload.TagName,
		TagColor:    payload.TagColor,
		Status:      payload.Status,
	}

	created, err := t.Repo.Create(c.UserContext(), record)
	if err != nil {
		t.Logger.Error("task create failed", "error", err, "user_id", user.ID)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Show fetches one of the current user's tasks
func (t *TaskController) Show(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	id, err := taskID(c)
	if err != nil {
		return notFound(c, "Task not found")
	}

	record, err := t.Repo.GetOwned(c.UserContext(), id, user.ID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return notFound(c, "Task not found")
		}
		return err
	}

	return c.JSON(record)
}

// Update applies a partial update to one of the current user's tasks
func (t *TaskController) Update(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	id, err := taskID(c)
	if err != nil {
		return notFound(c, "Task not found")
	}

	payload := new(TaskUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		t.Logger.Debug("task update parse payload failed", "error", err)
		return badRequest(c, "Failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	record, err := t.Repo.Update(c.UserContext(), id, user.ID, TaskPatch{
		Title:       payload.Title,
		Description: payload.Description,
		TaskDate:    payload.TaskDate,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		TagName:     payload.TagName,
		TagColor:    payload.TagColor,
		Status:      payload.Status,
	})
	if err != nil {
		if goerrors.IsNotFound(err) {
			return notFound(c, "Task not found")
		}
		return err
	}

	return c.JSON(record)
}

// UpdateStatus changes only the status of a task
func (t *TaskController) UpdateStatus(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	id, err := taskID(c)
	if err != nil {
		return notFound(c, "Task not found")
	}

	payload := new(TaskStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		t.Logger.Debug("task status parse payload failed", "error", err)
		return badRequest(c, "Failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	record, err := t.Repo.UpdateStatus(c.UserContext(), id, user.ID, payload.Status)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return notFound(c, "Task not found")
		}
		return err
	}

	return c.JSON(record)
}

// Delete removes one of the current user's tasks
func (t *TaskController) Delete(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, t.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	id, err := taskID(c)
	if err != nil {
		return notFound(c, "Task not found")
	}

	if err := t.Repo.Delete(c.UserContext(), id, user.ID); err != nil {
		if goerrors.IsNotFound(err) {
			return notFound(c, "Task not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func taskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func notFound(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"detail": detail,
	})
}
