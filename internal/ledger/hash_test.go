package ledger

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestFileHash(t *testing.T) {
	content := []byte("appointments workbook bytes")
	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	want := fmt.Sprintf("%x", sha256.Sum256(content))
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFileHash_MissingFile(t *testing.T) {
	if _, err := FileHash(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("want error for missing file")
	}
}
