package testsupport

import (
	"bytes"
	"os"
	"testing"
)

// WriteFile fills the target path with size bytes of filler so stat-based
// checks see a non-empty file. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	data := bytes.Repeat([]byte("ffui"), (size+3)/4)[:size]
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
