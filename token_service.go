package calendarx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenTTL is the validity window applied when the configuration
// does not provide one.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and validates signed identity tokens
type TokenService interface {
	Generate(identity Identity, ttl time.Duration) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey    []byte
	signingMethod string
	tokenTTL      time.Duration
	issuer        string
	logger        Logger
}

// NewTokenService creates a new TokenService instance. The signing key and
// method are process-wide configuration: rotating the key invalidates every
// previously issued token.
func NewTokenService(signingKey []byte, signingMethod string, tokenTTL time.Duration, issuer string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	if signingMethod == "" {
		signingMethod = jwt.SigningMethodHS256.Alg()
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &TokenServiceImpl{
		signingKey:    signingKey,
		signingMethod: signingMethod,
		tokenTTL:      tokenTTL,
		issuer:        issuer,
		logger:        logger,
	}
}

// Generate creates a token for an identity. A zero ttl falls back to the
// configured validity window.
func (ts *TokenServiceImpl) Generate(identity Identity, ttl time.Duration) (string, error) {
	if identity == nil {
		return "", goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	if ttl <= 0 {
		ttl = ts.tokenTTL
	}

	now := time.Now().UTC()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   SubjectForIdentity(identity.ID()),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	method := jwt.GetSigningMethod(ts.signingMethod)
	if method == nil {
		return "", goerrors.New("unknown signing method: "+ts.signingMethod, goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(method, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured
// claims. Claims are never surfaced from an unverified parse: the keyfunc
// rejects any algorithm other than the configured one before the signature
// check runs, and expiry is enforced by the parser.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if alg, _ := t.Header["alg"].(string); alg != ts.signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrUnableToDecodeSession
}
