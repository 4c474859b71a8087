package calendarx

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// AuthController exposes registration, login, and the current-user
// endpoint as JSON handlers.
type AuthController struct {
	Logger Logger
	Auther Authenticator
	cfg    Config
}

func NewAuthController(auther Authenticator, cfg Config) *AuthController {
	return &AuthController{
		Logger: defLogger{},
		Auther: auther,
		cfg:    cfg,
	}
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	if l != nil {
		a.Logger = l
	}
	return a
}

// RegisterAuthRoutes mounts the auth endpoints on the given router group.
// The /me route goes through the session gate; register and login stay
// open.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post("/register", controller.RegisterPost)
	app.Post("/login", controller.LoginPost)
	app.Get("/me", Protected(controller.Auther, controller.cfg, controller.Logger), controller.MeShow)
}

// UserResponse is the public shape of a user record; the password hash
// never leaves the server.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at"`
}

// NewUserResponse builds the outbound DTO for a user
func NewUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// TokenResponse carries a freshly issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		)
	}, "Invalid registration payload")
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// RegisterPost creates a new account. Duplicate emails surface as a 400
// so the response matches what clients of the original API expect.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("register parse payload failed", "error", err)
		return badRequest(c, "Failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	user, err := a.Auther.Register(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return badRequest(c, "Email already registered")
		}

		var richErr *goerrors.Error
		if errors.As(err, &richErr) && richErr.Category == goerrors.CategoryValidation {
			return unprocessable(c, richErr)
		}

		a.Logger.Error("register user failed", "error", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
}

// LoginPost verifies credentials and returns a bearer token. Unknown
// email and wrong password produce the same response; only credential
// failures get the uniform 401, a store failure stays a server error.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("login parse payload failed", "error", err)
		return badRequest(c, "Failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if !isCredentialFailure(err) {
			a.Logger.Error("login failed", "error", err)
			return err
		}

		a.Logger.Debug("login rejected", "email", payload.Email)
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Invalid email or password",
		})
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// MeShow returns the authenticated user
func (a *AuthController) MeShow(c *fiber.Ctx) error {
	user, ok := CurrentUser(c, a.cfg.GetContextKey())
	if !ok {
		return Unauthorized(c)
	}

	return c.JSON(NewUserResponse(user))
}

// isCredentialFailure reports whether a login error is an auth outcome
// that must stay indistinguishable to the caller, as opposed to a fault
// in the store or token service.
func isCredentialFailure(err error) bool {
	var richErr *goerrors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth ||
		richErr.Category == goerrors.CategoryNotFound
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": detail,
	})
}

func unprocessable(c *fiber.Ctx, err *goerrors.Error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": err.Message,
		"errors": err.ValidationMap(),
	})
}
