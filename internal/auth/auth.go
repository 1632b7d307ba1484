// Package auth verifies the bearer tokens issued by the account service
// and resolves them to a request identity.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dishes-api/internal/model"
	"dishes-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Claims are the JWT claims carried by an access token. The user id is
// stored under "_id", matching the users collection key.
type Claims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// Authenticator checks bearer tokens against a shared HMAC secret.
type Authenticator struct {
	secret []byte
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAuthenticator creates an authenticator that loads token subjects
// from users.
func NewAuthenticator(secret string, users repository.UserRepository, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		users:  users,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Authenticate resolves the caller of r. Any failure is reported as
// model.ErrUnauthorised, except store errors which are returned wrapped.
func (a *Authenticator) Authenticate(r *http.Request) (model.Identity, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return model.Identity{}, model.ErrUnauthorised
	}

	claims, err := a.parse(raw)
	if err != nil {
		a.logger.Debug().Err(err).Msg("rejected token")
		return model.Identity{}, model.ErrUnauthorised
	}

	id, ok := model.ParseID(claims.UserID)
	if !ok {
		a.logger.Debug().Str("user_id", claims.UserID).Msg("token subject is not a valid id")
		return model.Identity{}, model.ErrUnauthorised
	}

	user, err := a.users.GetByID(r.Context(), id)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to load token subject: %w", err)
	}
	if user == nil {
		a.logger.Debug().Str("user_id", claims.UserID).Msg("token subject not found")
		return model.Identity{}, model.ErrUnauthorised
	}

	return model.IdentityFromUser(*user), nil
}

// RequireAdmin rejects identities without the admin flag.
func (a *Authenticator) RequireAdmin(identity model.Identity) error {
	if !identity.Admin {
		a.logger.Warn().Str("user_id", identity.UserID.Hex()).Msg("admin operation refused")
		return model.ErrAdminRequired
	}
	return nil
}

// IssueToken signs a token for userID. The API never issues tokens to
// clients; this exists for local tooling and tests.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (a *Authenticator) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return raw, raw != ""
}
