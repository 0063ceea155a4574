package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleContacts is the five-row contact list used across package tests.
const SampleContacts = `name,email,phone
John Doe,john@example.com,555-1234
Jane Smith,jane@example.com,555-5678
John D,john@example.com,555-8765
Bob Johnson,bob@example.com,555-5678
Sarah Lee,sarah@example.com,555-4321
`

// WriteCSV writes content to dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
