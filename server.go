package calendarx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// DefaultCORSOrigins matches the local Vite dev server the frontend runs
// on.
const DefaultCORSOrigins = "http://localhost:5173,http://127.0.0.1:5173"

// ServerOptions tune the HTTP surface without touching auth config
type ServerOptions struct {
	CORSOrigins string
	Logger      Logger
}

// Server wires the repositories, the authenticator, and the HTTP
// controllers into one fiber application.
type Server struct {
	app    *fiber.App
	repos  RepositoryManager
	auther Authenticator
	logger Logger
}

// NewServer builds the application. Routes are mounted under /api/v1 to
// match the paths the frontend client uses.
func NewServer(db *bun.DB, cfg Config, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = defLogger{}
	}

	repos := NewRepositoryManager(db)

	provider := NewUserProvider(repos.Users()).WithLogger(logger)
	auther := NewAuthenticator(provider, repos.Users(), cfg).WithLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:      "calendarx",
		ErrorHandler: errorHandler(logger),
	})

	origins := opts.CORSOrigins
	if origins == "" {
		origins = DefaultCORSOrigins
	}

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	app.Get("/", healthHandler)
	app.Get("/health", healthHandler)

	api := app.Group("/api/v1")

	authController := NewAuthController(auther, cfg).WithLogger(logger)
	RegisterAuthRoutes(api.Group("/auth"), authController)

	taskController := NewTaskController(repos.Tasks(), auther, cfg).WithLogger(logger)
	RegisterTaskRoutes(api.Group("/tasks"), taskController)

	return &Server{
		app:    app,
		repos:  repos,
		auther: auther,
		logger: logger,
	}
}

// App exposes the underlying fiber application, mostly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the given address
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// errorHandler maps rich errors that escaped the controllers onto HTTP
// statuses. Anything uncategorized becomes a plain 500 so internals do
// not leak into responses.
func errorHandler(logger Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := statusForCategory(richErr.Category)
			if status == fiber.StatusUnauthorized {
				return Unauthorized(c)
			}
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed", "error", err, "path", c.Path())
				return c.Status(status).JSON(fiber.Map{"detail": "Internal server error"})
			}
			return c.Status(status).JSON(fiber.Map{"detail": richErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		logger.Error("request failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusUnprocessableEntity
	case goerrors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
