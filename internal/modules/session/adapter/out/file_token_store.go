package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sessionout "endure/internal/modules/session/port/out"
	apperrors "endure/internal/platform/errors"
)

// FileTokenStore keeps the auth token as a single file under the client
// state directory. One fixed location, one string; nothing else persists.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) sessionout.TokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(_ context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to persist empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(payload))
	if token == "" {
		return "", apperrors.ErrNoToken
	}
	return token, nil
}

func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
