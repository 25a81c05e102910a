package history

import "time"

// Record is one finished transcode session.
type Record struct {
	ID                    int64
	SessionID             string
	SourcePath            string
	TargetFormat          string
	Device                string
	VideoCodec            string
	OutputPath            string
	Status                string
	Percent               float64
	SourceDurationSeconds float64
	StartedAt             time.Time
	FinishedAt            time.Time
}
