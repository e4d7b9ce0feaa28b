package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type credentials struct {
	Token string `json:"token"`
}

// CredentialStore keeps the bearer token in a JSON file.
type CredentialStore struct {
	Path string
}

// DefaultCredentialPath is $HOME/.threadbbs/credentials.json.
func DefaultCredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".threadbbs", "credentials.json"), nil
}

// Load returns the stored token, or "" when nothing is stored.
func (s CredentialStore) Load() (string, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading credentials: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", fmt.Errorf("error unmarshalling credentials: %w", err)
	}
	return c.Token, nil
}

// Save writes token with owner-only permissions.
func (s CredentialStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("error creating credentials dir: %w", err)
	}
	raw, err := json.Marshal(credentials{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o600)
}

// Clear removes the stored token. A missing file is not an error.
func (s CredentialStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing credentials: %w", err)
	}
	return nil
}
