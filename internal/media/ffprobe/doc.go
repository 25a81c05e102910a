// Package ffprobe wraps the ffprobe command line tool.
//
// Two probes are exposed: Duration asks for the container duration in a
// fixed numeric format and degrades to 0 ("duration unknown") on any probe
// or parse failure, while Describe captures ffprobe's human-readable stream
// report for display and fails only when the binary cannot be launched.
package ffprobe
