package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"airvend/pkg/models"
)

// The persisted session is two keys: the opaque token in an env-style
// credentials file, and the serialized user record as JSON. Writes are
// last-write-wins with no cross-key transaction; readers that find only one
// key treat the pair as absent.
const (
	credentialsFile = "credentials.env"
	userFile        = "user.json"
	tokenKey        = "AIRVEND_TOKEN"
)

// CredentialStore persists the session token and user record under the CLI
// state directory.
type CredentialStore struct {
	dir string
}

// NewCredentialStore returns a store rooted at the CLI state directory.
func NewCredentialStore() (*CredentialStore, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &CredentialStore{dir: dir}, nil
}

// NewCredentialStoreAt returns a store rooted at an explicit directory.
func NewCredentialStoreAt(dir string) *CredentialStore {
	return &CredentialStore{dir: dir}
}

// Save persists both session keys. The token is written first; a crash between
// the two writes leaves a partial pair that Load will discard.
func (s *CredentialStore) Save(token string, user *models.User) error {
	if err := s.saveEnvValue(tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), b, 0o600); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// SaveUser rewrites only the user record, preserving the token.
func (s *CredentialStore) SaveUser(user *models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), b, 0o600)
}

// Load reads the persisted session. A missing or unparseable key yields an
// empty token and nil user for that slot; callers decide what a partial pair
// means.
func (s *CredentialStore) Load() (string, *models.User, error) {
	envMap, err := s.loadEnvFile()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", nil, err
	}
	token := envMap[tokenKey]
	// OS environment takes precedence over the file
	if v := os.Getenv(tokenKey); v != "" {
		token = v
	}

	b, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return token, nil, nil
	}
	if err != nil {
		return token, nil, err
	}
	var user models.User
	if err := json.Unmarshal(b, &user); err != nil {
		return token, nil, nil
	}
	return token, &user, nil
}

// Clear removes both session keys. Missing files are not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(filepath.Join(s.dir, credentialsFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, userFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *CredentialStore) loadEnvFile() (map[string]string, error) {
	envMap := make(map[string]string)
	file, err := os.Open(filepath.Join(s.dir, credentialsFile))
	if err != nil {
		return envMap, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		envMap[key] = value
	}
	return envMap, scanner.Err()
}

// saveEnvValue saves or updates a key=value pair in the credentials file,
// preserving other values.
func (s *CredentialStore) saveEnvValue(key, value string) error {
	envMap, err := s.loadEnvFile()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	envMap[key] = value

	file, err := os.OpenFile(filepath.Join(s.dir, credentialsFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, _ = file.WriteString("# AirVend CLI credentials\n")
	_, _ = file.WriteString("# Generated by 'airvend login'\n\n")
	for k, v := range envMap {
		if strings.ContainsAny(v, " \t\n\"'") {
			v = "\"" + strings.ReplaceAll(v, "\"", "\\\"") + "\""
		}
		if _, err := fmt.Fprintf(file, "%s=%s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
