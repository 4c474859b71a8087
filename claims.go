package calendarx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents validated JWT claims
type AuthClaims interface {
	Subject() string
	UserID() (int64, error)
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID parses the subject claim as a numeric identity id. The subject is
// always serialized as a string regardless of the id's native type, so the
// decode path owns the coercion back to int64.
func (c *JWTClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0, ErrUnableToMapClaims
	}
	return id, nil
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// SubjectForIdentity serializes a numeric identity id into the string form
// carried by the sub claim.
func SubjectForIdentity(id int64) string {
	return strconv.FormatInt(id, 10)
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
