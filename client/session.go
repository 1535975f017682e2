package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// SessionStore keeps role-scoped bearer tokens (and the cached admin
// profile) in a JSON credentials file, the CLI's stand-in for the
// browser's persistent storage. Entries outlive the process; expiry is
// detected lazily when a guarded command checks IsAuthenticated.
type SessionStore struct {
	mu   sync.Mutex
	path string
	data credentialsFile
}

type credentialsFile struct {
	Sessions map[string]sessionEntry `json:"sessions"`
}

type sessionEntry struct {
	Token string          `json:"token"`
	Admin json.RawMessage `json:"admin,omitempty"`
}

// DefaultSessionPath places the credentials file under the user config
// directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wifiportal", "credentials.json"), nil
}

func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{
		path: path,
		data: credentialsFile{Sessions: map[string]sessionEntry{}},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	// A corrupt credentials file behaves like no file: every role is
	// simply unauthenticated until the next login.
	if err := json.Unmarshal(raw, &s.data); err != nil || s.data.Sessions == nil {
		s.data = credentialsFile{Sessions: map[string]sessionEntry{}}
	}
	return s, nil
}

func (s *SessionStore) Token(role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Sessions[role].Token
}

func (s *SessionStore) SetToken(role, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.data.Sessions[role]
	entry.Token = token
	s.data.Sessions[role] = entry
	return s.save()
}

// SetAdminProfile caches the admin identity returned at login.
func (s *SessionStore) SetAdminProfile(admin Admin) error {
	raw, err := json.Marshal(admin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.data.Sessions[RoleAdmin]
	entry.Admin = raw
	s.data.Sessions[RoleAdmin] = entry
	return s.save()
}

func (s *SessionStore) AdminProfile() (Admin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.data.Sessions[RoleAdmin].Admin
	if len(raw) == 0 {
		return Admin{}, false
	}
	var admin Admin
	if err := json.Unmarshal(raw, &admin); err != nil {
		return Admin{}, false
	}
	return admin, true
}

func (s *SessionStore) Logout(role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Sessions, role)
	return s.save()
}

// IsAuthenticated reports whether a non-expired token is stored for the
// role. The check decodes the token's payload segment without verifying
// the signature: it is advisory only, the server re-validates every
// request. Missing or malformed tokens are unauthenticated, never an error.
func (s *SessionStore) IsAuthenticated(role string) bool {
	token := s.Token(role)
	if token == "" {
		return false
	}

	exp, err := tokenExpiry(token)
	if err != nil {
		return false
	}
	return exp.After(time.Now())
}

func tokenExpiry(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, errors.New("not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, err
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.Exp == 0 {
		return time.Time{}, errors.New("no exp claim")
	}
	return time.Unix(claims.Exp, 0), nil
}

// save assumes the mutex is held.
func (s *SessionStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
