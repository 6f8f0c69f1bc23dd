package persistence

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCredentialsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewCredentialsStore()

	if err := store.Save(path, "0123456789abcdef", "tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	creds, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds == nil {
		t.Fatal("Load returned nil credentials")
	}
	if creds.DeviceID != "0123456789abcdef" {
		t.Errorf("DeviceID: got %q", creds.DeviceID)
	}
	if creds.Token != "tok" {
		t.Errorf("Token: got %q", creds.Token)
	}
	if creds.Version != CredentialsVersion {
		t.Errorf("Version: got %d, want %d", creds.Version, CredentialsVersion)
	}
	if creds.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}
}

func TestCredentialsLoadMissingFile(t *testing.T) {
	store := NewCredentialsStore()

	creds, err := store.Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load of absent file: %v", err)
	}
	if creds != nil {
		t.Errorf("Load of absent file returned %+v, want nil", creds)
	}
}

func TestCredentialsClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialsStore()

	if err := store.Save(path, "0123456789abcdef", "tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(path); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("credentials file still exists after Clear")
	}

	// Clearing an absent file is not an error.
	if err := store.Clear(path); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestCredentialsSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialsStore()

	if err := store.Save(path, "0123456789abcdef", "old"); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(path, "0123456789abcdef", "new"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	creds, err := store.Load(path)
	if err != nil || creds == nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds.Token != "new" {
		t.Errorf("Token after overwrite: got %q, want %q", creds.Token, "new")
	}

	// No temporary file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}
