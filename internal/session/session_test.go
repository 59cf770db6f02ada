package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/apiconsole/internal/types"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func grant(access string) types.AuthGrant {
	return types.AuthGrant{
		User:         types.UserProfile{ID: "u1", Username: "alice", Email: "alice@example.com"},
		AccessToken:  access,
		RefreshToken: "refresh",
	}
}

func TestStartPersistsAndLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	m := NewManager(path)
	require.NoError(t, m.Start("http://localhost:5000", grant("access")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded := NewManager(path)
	require.NoError(t, reloaded.Load())
	assert.True(t, reloaded.Active())
	assert.Equal(t, "http://localhost:5000", reloaded.Server())
	assert.Equal(t, "refresh", reloaded.RefreshToken())

	user, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
}

func TestEndRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	m := NewManager(path)
	require.NoError(t, m.Start("http://localhost:5000", grant("access")))
	require.NoError(t, m.End())

	assert.False(t, m.Active())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Ending twice is harmless
	assert.NoError(t, m.End())
}

func TestCurrentUserIsACopy(t *testing.T) {
	m := NewManager("")
	require.NoError(t, m.Start("http://x", grant("access")))

	user, _ := m.CurrentUser()
	user.Username = "mallory"

	held, _ := m.CurrentUser()
	assert.Equal(t, "alice", held.Username)
}

func TestSetUser(t *testing.T) {
	m := NewManager("")
	require.NoError(t, m.SetUser(types.UserProfile{ID: "u1", Username: "bob"}))
	user, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bob", user.Username)
}

func TestLoadMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, m.Load())
	assert.False(t, m.Active())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	assert.Error(t, NewManager(path).Load())
}

func TestTokenExpiryAndRefresh(t *testing.T) {
	now := time.Now()
	m := NewManager("")

	require.NoError(t, m.Start("http://x", grant(signedToken(t, now.Add(time.Hour)))))
	exp, ok := m.TokenExpiry()
	require.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)
	assert.False(t, m.NeedsRefresh(now, time.Minute))

	require.NoError(t, m.SetAccessToken(signedToken(t, now.Add(-time.Minute))))
	assert.True(t, m.NeedsRefresh(now, 0))
}

func TestNeedsRefresh_OpaqueToken(t *testing.T) {
	m := NewManager("")
	require.NoError(t, m.Start("http://x", grant("not-a-jwt")))

	_, ok := m.TokenExpiry()
	assert.False(t, ok)
	assert.False(t, m.NeedsRefresh(time.Now(), time.Minute))
}
