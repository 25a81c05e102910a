package main

import "testing"

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:       "unknown",
		-5:      "unknown",
		83.5:    "00:01:24",
		3599:    "00:59:59",
		7425.25: "02:03:45",
	}
	for seconds, want := range cases {
		if got := formatSeconds(seconds); got != want {
			t.Errorf("formatSeconds(%v) = %q, want %q", seconds, got, want)
		}
	}
}

func TestLastLogLine(t *testing.T) {
	log := "Input #0, matroska\n  Duration: 00:02:03\n\n=== transcode complete ===\n"
	if got := lastLogLine(log); got != "=== transcode complete ===" {
		t.Fatalf("unexpected last line %q", got)
	}
	if got := lastLogLine("  \n \n"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
