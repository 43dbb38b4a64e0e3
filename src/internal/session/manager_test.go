package session

import (
	"context"
	"errors"
	"strings"
	"studysphere-svc/src/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVersions map[string]int64

func (s stubVersions) TokenVersion(_ context.Context, userID string) (int64, error) {
	v, ok := s[userID]
	if !ok {
		return 0, models.ErrUserNotFound
	}
	return v, nil
}

type failingVersions struct{}

func (failingVersions) TokenVersion(context.Context, string) (int64, error) {
	return 0, errors.New("lookup failed")
}

func newTestManager(ttl time.Duration, versions VersionSource) *Manager {
	return NewManager("test-secret", ttl, false, versions)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newTestManager(24*time.Hour, stubVersions{"user-1": 3})

	token, err := m.Issue("user-1", "student@example.com", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, int64(3), claims.TokenVersion)
}

func TestVerifyRejectsMissingToken(t *testing.T) {
	m := newTestManager(24*time.Hour, stubVersions{})

	_, err := m.Verify(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	expired := newTestManager(-time.Hour, stubVersions{"user-1": 0})

	token, err := expired.Issue("user-1", "student@example.com", 0)
	require.NoError(t, err)

	_, err = expired.Verify(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newTestManager(24*time.Hour, stubVersions{"user-1": 0})

	token, err := m.Issue("user-1", "student@example.com", 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character in the payload segment.
	payload := []byte(parts[1])
	if payload[4] == 'A' {
		payload[4] = 'B'
	} else {
		payload[4] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = m.Verify(context.Background(), tampered)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", 24*time.Hour, false, stubVersions{"user-1": 0})
	verifier := NewManager("secret-b", 24*time.Hour, false, stubVersions{"user-1": 0})

	token, err := issuer.Issue("user-1", "student@example.com", 0)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestVerifyRejectsStaleTokenVersion(t *testing.T) {
	versions := stubVersions{"user-1": 1}
	m := newTestManager(24*time.Hour, versions)

	token, err := m.Issue("user-1", "student@example.com", 1)
	require.NoError(t, err)

	// Password change bumps the stored version; outstanding tokens die.
	versions["user-1"] = 2

	_, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestVerifyRejectsWhenVersionLookupFails(t *testing.T) {
	m := newTestManager(24*time.Hour, failingVersions{})

	token, err := m.Issue("user-1", "student@example.com", 0)
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
