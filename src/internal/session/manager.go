package session

import (
	"context"
	"errors"
	"net/http"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session"

// Claims represents the session token payload.
type Claims struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	TokenVersion int64  `json:"tokenVersion"`
	jwt.RegisteredClaims
}

// VersionSource reports the current token version for a user. Issued tokens
// embed the version they were minted with; bumping the stored version
// invalidates every outstanding token for that user.
type VersionSource interface {
	TokenVersion(ctx context.Context, userID string) (int64, error)
}

// Manager issues and verifies the signed session credential. It holds no
// per-request state: the secret is immutable process-wide configuration.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	secure   bool
	versions VersionSource
}

func NewManager(jwtSecret string, ttl time.Duration, secureCookies bool, versions VersionSource) *Manager {
	return &Manager{
		secret:   []byte(jwtSecret),
		ttl:      ttl,
		secure:   secureCookies,
		versions: versions,
	}
}

// Issue signs a new session token for the user, valid for the manager's TTL.
func (m *Manager) Issue(userID, email string, version int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:       userID,
		Email:        email,
		TokenVersion: version,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature, expiration and token version. Every failure mode
// returns models.ErrUnauthenticated: the caller must not be able to tell a
// tampered token from an expired one.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, models.ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, models.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, models.ErrUnauthenticated
	}

	if m.versions != nil {
		version, err := m.versions.TokenVersion(ctx, claims.UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", claims.UserID).Warn("Token version lookup failed")
			return nil, models.ErrUnauthenticated
		}
		if version != claims.TokenVersion {
			return nil, models.ErrUnauthenticated
		}
	}

	return claims, nil
}

// SetCookie stores the token in the HTTP-only session cookie.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearCookie deletes the session cookie. There is no server-side session
// store, so this is the entire logout mechanism: a still-unexpired token
// resubmitted by hand remains cryptographically valid until its version is
// bumped or its expiry elapses.
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
