// Package encoding orchestrates a single ffmpeg transcode from plan to
// terminal state.
//
// It maps a request onto codec and hardware acceleration flags, spawns the
// ffmpeg process with its machine-readable progress stream piped back, and
// drives the run on a dedicated goroutine while a polling consumer reads a
// mutex-guarded snapshot. Cancellation is cooperative: a lock-free flag is
// checked at every progress-line boundary and the process is killed hard when
// it trips.
//
// Success is classified by inspecting the output artifact, not the process
// exit code: a missing or empty output file marks the session failed even
// when ffmpeg exits zero.
package encoding
