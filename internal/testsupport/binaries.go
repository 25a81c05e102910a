package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// shellQuote wraps s in single quotes so the shell passes it through
// verbatim; Go's %q quoting would leave escapes like \n uninterpreted.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// WriteScript writes an executable shell script and returns its path. Tests
// use scripts as stand-ins for ffmpeg and ffprobe.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()

	target := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// StubFFprobe writes an ffprobe stand-in that answers both probe shapes:
// the duration query prints the given value on stdout, and the describe
// invocation prints the given text on stderr and exits nonzero, matching
// real ffprobe behaviour when no output file is requested.
func StubFFprobe(t testing.TB, dir, duration, describe string) string {
	t.Helper()

	body := fmt.Sprintf(`case "$1" in
-v)
  printf '%%s\n' %s
  exit 0
  ;;
-i)
  printf '%%s' %s >&2
  exit 1
  ;;
esac
exit 1
`, shellQuote(duration), shellQuote(describe))
	return WriteScript(t, dir, "ffprobe", body)
}
