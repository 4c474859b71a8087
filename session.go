package calendarx

import (
	"fmt"
	"strconv"
	"time"
)

var _ Session = &SessionObject{}

// SessionObject is the request-scoped view of a validated token. It is
// created by the session gate and discarded at request end; nothing here
// is ever persisted.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf("user=%s iss=%s iat=%s", s.UserID, s.Issuer, issuedAt)
}

// sessionFromAuthClaims creates a SessionObject from validated claims. A
// missing subject is a decode failure, not an empty session.
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	subject := claims.Subject()
	if subject == "" {
		return nil, ErrUnableToMapClaims
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	session := &SessionObject{
		UserID: subject,
	}

	if jwtClaims, ok := claims.(*JWTClaims); ok {
		session.Issuer = jwtClaims.RegisteredClaims.Issuer
	}

	if !issuedAt.IsZero() {
		session.IssuedAt = &issuedAt
	}
	if !expiresAt.IsZero() {
		session.ExpirationDate = &expiresAt
	}

	return session, nil
}

// parseSubject coerces a subject string back into a numeric identity id
func parseSubject(subject string) (int64, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, ErrUnableToMapClaims
	}
	return id, nil
}
