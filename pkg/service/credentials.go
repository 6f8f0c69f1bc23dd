package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID assigns a fresh random device ID to the aggregate and returns
// it: 16 lowercase hexadecimal characters from 8 random bytes.
func (s *Supervisor) GenerateID() string {
	var raw [8]byte
	rand.Read(raw[:])

	id := hex.EncodeToString(raw[:])
	s.thing.SetID(id)
	s.logger.Info("generated device id", "id", id)
	return id
}

// StoreCredentials persists the id/token pair to the durable store and only
// then records the token in memory. On a persistence failure the in-memory
// token stays untouched, so the aggregate never claims credentials that a
// restart would lose.
func (s *Supervisor) StoreCredentials(token string) error {
	path := s.thing.CredentialsPath()
	if err := s.creds.Save(path, s.thing.ID(), token); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	s.thing.SetToken(token)
	s.logger.Info("stored device credentials", "id", s.thing.ID())
	return nil
}

// ClearStoredCredentials removes the durable credential record. It does not
// touch the in-memory id or token; the state machine clears those separately
// when the protocol requires it.
func (s *Supervisor) ClearStoredCredentials() error {
	return s.creds.Clear(s.thing.CredentialsPath())
}

// ClearID resets the in-memory device ID.
func (s *Supervisor) ClearID() { s.thing.ClearID() }

// ClearToken resets the in-memory device token.
func (s *Supervisor) ClearToken() { s.thing.ClearToken() }

// HasToken reports whether the device holds a token in memory.
func (s *Supervisor) HasToken() bool { return s.thing.HasToken() }

// ID returns the assigned device ID, or "" if none.
func (s *Supervisor) ID() string { return s.thing.ID() }
