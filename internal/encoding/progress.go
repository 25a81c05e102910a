package encoding

import (
	"strconv"
	"strings"
)

// ffmpeg's -progress stream is newline-delimited key=value ASCII. Only the
// elapsed output time is consumed; every other key is ignored so new stream
// fields never break parsing. Despite its name, out_time_ms carries
// microseconds.
const keyElapsedMicros = "out_time_ms"

func parseElapsedMicros(line string) (int64, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found || key != keyElapsedMicros {
		return 0, false
	}
	micros, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return micros, true
}

// completionFraction converts elapsed output time into a fraction of the
// total duration, clamped to [0, 1]. The second return is false when the
// duration is unknown, in which case progress holds its prior value.
func completionFraction(elapsedMicros int64, totalSeconds float64) (float64, bool) {
	if totalSeconds <= 0 {
		return 0, false
	}
	fraction := float64(elapsedMicros) / (totalSeconds * 1_000_000)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fraction, true
}
