// Package testsupport provides shared helpers for package tests: temp-backed
// configurations, stub ffmpeg/ffprobe scripts, and file fixtures.
package testsupport
