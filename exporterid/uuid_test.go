package exporterid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewUUIDGeneratesAndPersists(t *testing.T) {
	tmpDir := t.TempDir()

	u, err := NewUUID(tmpDir)
	if err != nil {
		t.Fatalf("NewUUID failed: %v", err)
	}

	if !IsValidUUID(u.String()) {
		t.Errorf("Generated UUID is not valid: %s", u.String())
	}

	// The UUID must have been written to disk
	data, err := os.ReadFile(u.FilePath())
	if err != nil {
		t.Fatalf("Failed to read UUID file: %v", err)
	}

	if strings.TrimSpace(string(data)) != u.String() {
		t.Errorf("Persisted UUID %q doesn't match %q", strings.TrimSpace(string(data)), u.String())
	}
}

func TestNewUUIDLoadsExisting(t *testing.T) {
	tmpDir := t.TempDir()

	first, err := NewUUID(tmpDir)
	if err != nil {
		t.Fatalf("First NewUUID failed: %v", err)
	}

	second, err := NewUUID(tmpDir)
	if err != nil {
		t.Fatalf("Second NewUUID failed: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("UUID changed between loads: %s vs %s", first.String(), second.String())
	}
}

func TestNewUUIDCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")

	u, err := NewUUID(nested)
	if err != nil {
		t.Fatalf("NewUUID failed: %v", err)
	}

	if _, err := os.Stat(u.FilePath()); err != nil {
		t.Errorf("UUID file not created in nested directory: %v", err)
	}
}

func TestNewUUIDInvalidFileContents(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "exporter-uuid.txt"), []byte("not-a-uuid\n"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt UUID file: %v", err)
	}

	if _, err := NewUUID(tmpDir); err == nil {
		t.Error("Expected error for corrupt UUID file")
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("9b2b1f43-1a53-4a6e-9a1e-0a8f6f2d1c3b") {
		t.Error("Expected valid UUID to pass")
	}
	if IsValidUUID("definitely-not-a-uuid") {
		t.Error("Expected invalid UUID to fail")
	}
	if IsValidUUID("") {
		t.Error("Expected empty string to fail")
	}
}
