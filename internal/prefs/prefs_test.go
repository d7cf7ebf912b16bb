package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaultTheme(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	if got.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got.Theme, defaultTheme)
	}
}

func TestLoad_ReadsSavedTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(path)
	if got.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", got.Theme, "Slate")
	}
}

func TestLoad_MalformedFileDegradesToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(`theme = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Load(path)
	if got.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default on parse failure", got.Theme)
	}
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deeply", "nested", "prefs.toml")
	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := Load(path); got.Theme != "Slate" {
		t.Fatalf("Theme = %q after Save, want %q", got.Theme, "Slate")
	}
}
