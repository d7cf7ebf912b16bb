package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestSignInThenCurrentUserRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	id := uuid.New()

	if err := SignIn(path, id); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	got, err := CurrentUser(path)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if got != id {
		t.Fatalf("CurrentUser = %s, want %s", got, id)
	}
}

func TestCurrentUser_MissingFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if _, err := CurrentUser(path); !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser error = %v, want ErrNoSession", err)
	}
}

func TestCurrentUser_GarbageUserIDIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte(`user_id = "not-a-uuid"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := CurrentUser(path); !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser error = %v, want ErrNoSession", err)
	}
}

func TestSignOut_RemovesSessionAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := SignIn(path, uuid.New()); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	if err := SignOut(path); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if _, err := CurrentUser(path); !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser after SignOut = %v, want ErrNoSession", err)
	}
	if err := SignOut(path); err != nil {
		t.Fatalf("second SignOut returned error: %v", err)
	}
}

func TestSignIn_RejectsNilUser(t *testing.T) {
	if err := SignIn(filepath.Join(t.TempDir(), "s.toml"), uuid.Nil); err == nil {
		t.Fatal("SignIn accepted nil user id")
	}
}
