package calendarx_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/calendarx"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaimsUserID(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int64
		wantErr bool
	}{
		{
			name:    "Numeric subject",
			subject: "42",
			want:    42,
		},
		{
			name:    "Large id",
			subject: "9223372036854775807",
			want:    9223372036854775807,
		},
		{
			name:    "Empty subject",
			subject: "",
			wantErr: true,
		},
		{
			name:    "Non numeric subject",
			subject: "alice@example.com",
			wantErr: true,
		},
		{
			name:    "UUID subject",
			subject: "7f8c3a36-9a1d-4a6e-8f3c-2d1b5e4a9c01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &calendarx.JWTClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject},
			}

			id, err := claims.UserID()

			if tt.wantErr {
				assert.ErrorIs(t, err, calendarx.ErrUnableToMapClaims)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestSubjectForIdentity(t *testing.T) {
	assert.Equal(t, "0", calendarx.SubjectForIdentity(0))
	assert.Equal(t, "42", calendarx.SubjectForIdentity(42))
	assert.Equal(t, "9223372036854775807", calendarx.SubjectForIdentity(9223372036854775807))
}

func TestJWTClaimsTimesWithoutDates(t *testing.T) {
	claims := &calendarx.JWTClaims{}

	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}
