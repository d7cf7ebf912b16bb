// Package auth resolves the current user from the session file.
//
// Sign-in and sign-up flows belong to the hosted auth provider; this client
// only needs "who is signed in" and "sign out". The provider's CLI login
// writes the session file, and removing it is the whole sign-out story.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// ErrNoSession means no user is signed in. Gateway calls are blocked until a
// session exists.
var ErrNoSession = errors.New("no active session, sign in first")

const defaultSessionPath = "~/.config/tally/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

type sessionFile struct {
	UserID string `toml:"user_id"`
}

// CurrentUser reads the session file and returns the signed-in user's id.
func CurrentUser(path string) (uuid.UUID, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return uuid.Nil, err
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return uuid.Nil, ErrNoSession
		}
		return uuid.Nil, fmt.Errorf("read session: %w", err)
	}

	var session sessionFile
	if err := toml.Unmarshal(bytes, &session); err != nil {
		return uuid.Nil, fmt.Errorf("parse session: %w", err)
	}

	id, err := uuid.Parse(strings.TrimSpace(session.UserID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}

// SignIn records the user id in the session file, creating directories as
// needed.
func SignIn(path string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id is required")
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(sessionFile{UserID: userID.String()})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// SignOut removes the session file. Signing out twice is a no-op.
func SignOut(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
