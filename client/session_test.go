package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, exp time.Time) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "sub": "tenant-1"})
	require.NoError(t, err)

	enc := base64.RawURLEncoding.EncodeToString
	return fmt.Sprintf("%s.%s.%s",
		enc([]byte(`{"alg":"HS512","typ":"JWT"}`)),
		enc(payload),
		enc([]byte("sig")))
}

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := NewSessionStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	return s
}

func TestSessionStorePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewSessionStore(path)
	require.NoError(t, err)
	token := testToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.SetToken(RoleTenant, token))

	reloaded, err := NewSessionStore(path)
	require.NoError(t, err)
	assert.Equal(t, token, reloaded.Token(RoleTenant))
	assert.True(t, reloaded.IsAuthenticated(RoleTenant))
}

func TestSessionStoreRolesAreIndependent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetToken(RoleTenant, testToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, s.SetToken(RoleAdmin, testToken(t, time.Now().Add(time.Hour))))

	require.NoError(t, s.Logout(RoleTenant))
	assert.False(t, s.IsAuthenticated(RoleTenant))
	assert.True(t, s.IsAuthenticated(RoleAdmin))
}

func TestIsAuthenticatedExpiredToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetToken(RoleTenant, testToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, s.IsAuthenticated(RoleTenant))
}

func TestIsAuthenticatedNeverPanics(t *testing.T) {
	s := newTestStore(t)

	for _, token := range []string{
		"",
		"not-a-jwt",
		"a.b",
		"a.!!!not-base64!!!.c",
		"a." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".c",
		"a." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"x"}`)) + ".c",
	} {
		require.NoError(t, s.SetToken(RoleTenant, token))
		assert.False(t, s.IsAuthenticated(RoleTenant), "token %q", token)
	}
}

func TestSessionStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o600))

	s, err := NewSessionStore(path)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated(RoleTenant))
	assert.Empty(t, s.Token(RoleAdmin))
}

func TestAdminProfileCache(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.AdminProfile()
	assert.False(t, ok)

	admin := Admin{ID: "a1", Name: "Admin", Email: "admin@example.com", Role: "superadmin"}
	require.NoError(t, s.SetAdminProfile(admin))

	got, ok := s.AdminProfile()
	require.True(t, ok)
	assert.Equal(t, admin, got)
}
