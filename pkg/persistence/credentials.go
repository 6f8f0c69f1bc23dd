package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CredentialsVersion is the current version of the credentials file format.
const CredentialsVersion = 1

// Credentials is the durable identity of a registered gateway.
type Credentials struct {
	// Version is the file format version.
	Version int `json:"version"`

	// SavedAt is when the credentials were last saved.
	SavedAt time.Time `json:"saved_at"`

	// DeviceID is the assigned device identifier.
	DeviceID string `json:"device_id"`

	// Token is the device token issued at registration.
	Token string `json:"token"`
}

// CredentialsStore persists gateway credentials to a JSON file. The path is
// supplied per call because the locator is owned by the Thing aggregate.
type CredentialsStore struct {
	mu sync.Mutex
}

// NewCredentialsStore creates a credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{}
}

// Save writes (id, token) to path, creating parent directories as needed.
// The write goes through a temporary file and rename so a crash never
// leaves a truncated credentials file.
func (s *CredentialsStore) Save(path, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	creds := Credentials{
		Version:  CredentialsVersion,
		SavedAt:  time.Now(),
		DeviceID: id,
		Token:    token,
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads credentials from path. Returns nil, nil if the file does not
// exist (unregistered gateway).
func (s *CredentialsStore) Load(path string) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	creds := &Credentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// Clear removes the credentials file. Removing an absent file is not an
// error.
func (s *CredentialsStore) Clear(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
