package calendarx

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// TextCode values surfaced alongside structured errors so API clients can
// branch without string matching messages.
const (
	TextCodeInvalidCreds       = "INVALID_CREDENTIALS"
	TextCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeSessionDecodeError = "SESSION_DECODE_ERROR"
	TextCodeClaimsMappingError = "CLAIMS_MAPPING_ERROR"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
	TextCodePasswordTooLong    = "PASSWORD_TOO_LONG"
	TextCodeTaskNotFound       = "TASK_NOT_FOUND"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrMismatchedHashAndPassword covers both an unknown email and a wrong
// password so callers cannot tell which one failed.
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrDuplicateEmail signals a registration against an email that already
// has an account.
var ErrDuplicateEmail = goerrors.New("email already registered", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode(TextCodeDuplicateEmail)

// ErrTokenExpired is returned when a token's exp claim is in the past.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers every other decode failure: bad signature,
// unsupported algorithm, garbage input.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrUnableToDecodeSession unable to decode JWT claims into a session
var ErrUnableToDecodeSession = goerrors.New("unable to decode session", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeSessionDecodeError)

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = goerrors.New("unable to map claims", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeClaimsMappingError)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrPasswordTooLong rejects passwords beyond bcrypt's 72 byte input limit
var ErrPasswordTooLong = goerrors.New("password must be at most 72 bytes", goerrors.CategoryValidation).
	WithTextCode(TextCodePasswordTooLong)

// ErrTaskNotFound is returned when a task does not exist or belongs to a
// different user; both cases look identical to the caller.
var ErrTaskNotFound = goerrors.New("task not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode(TextCodeTaskNotFound)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
