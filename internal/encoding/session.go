package encoding

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ffui/internal/logging"
)

var commandContext = exec.CommandContext

// ErrSessionRunning is returned by Start while a previous run is still live.
var ErrSessionRunning = errors.New("transcode session already running")

// Prober reads duration and descriptive metadata from a source file.
type Prober interface {
	// Duration returns the source duration in seconds, or 0 when unknown.
	Duration(ctx context.Context, path string) float64
	// Describe returns the probe tool's diagnostic text for display. A
	// launch failure is fatal and must be returned, not swallowed.
	Describe(ctx context.Context, path string) (string, error)
}

// Recorder persists the outcome of a finished session.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome) error
}

// Status classifies how a session ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Outcome summarizes a finished session.
type Outcome struct {
	SessionID       string
	SourcePath      string
	TargetFormat    string
	Device          Device
	VideoCodec      string
	OutputPath      string
	Status          Status
	Percent         float64
	DurationSeconds float64 // source duration from the probe, 0 when unknown
	StartedAt       time.Time
	FinishedAt      time.Time
}

const (
	logMarkerCancelled  = "\n=== transcode cancelled ===\n"
	logMarkerEmptyOut   = "\n=== transcode failed: output file missing or empty ===\n"
	logMarkerCompleted  = "\n=== transcode complete ===\n"
	logMarkerSpawnFail  = "\n=== transcode failed: could not start ffmpeg ===\n"
	logMarkerOutputBusy = "\n=== transcode failed: output file is locked by another process ===\n"
)

// Option configures a Session.
type Option func(*Session)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(s *Session) {
		if trimmed := strings.TrimSpace(binary); trimmed != "" {
			s.binary = trimmed
		}
	}
}

// WithProber sets the probe implementation used for duration and metadata.
func WithProber(prober Prober) Option {
	return func(s *Session) { s.prober = prober }
}

// WithLogger routes session events to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder persists finished sessions through the given recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *Session) { s.recorder = recorder }
}

// Session drives one ffmpeg transcode at a time. The spawned process handle
// is owned exclusively by the session's worker goroutine; the polling side
// interacts only through Snapshot and Cancel.
type Session struct {
	binary   string
	prober   Prober
	logger   *slog.Logger
	recorder Recorder
	state    *state
}

// NewSession constructs a session using defaults.
func NewSession(opts ...Option) *Session {
	session := &Session{
		binary: "ffmpeg",
		logger: logging.NewNop(),
		state:  newState(),
	}
	for _, opt := range opts {
		opt(session)
	}
	return session
}

// Start begins a new transcode. It is rejected while a run is live, and
// fails before any ffmpeg process is spawned when the probe tool cannot be
// launched. The observable state is reset synchronously, so a poller never
// sees leftovers from a previous run once Start returns.
func (s *Session) Start(ctx context.Context, req Request) error {
	if !s.state.tryStart() {
		return ErrSessionRunning
	}

	if s.prober != nil {
		description, err := s.prober.Describe(ctx, req.SourcePath)
		if err != nil {
			s.state.endRun()
			return err
		}
		s.state.appendLog(description)
	}

	sessionID := uuid.NewString()
	startedAt := time.Now().UTC()
	s.logger.Info("transcode session starting",
		logging.String("session_id", sessionID),
		logging.String("input", req.SourcePath),
		logging.String("format", req.TargetFormat),
		logging.String("device", string(req.Device)),
	)

	go s.run(ctx, sessionID, req, startedAt)
	return nil
}

// Cancel requests cooperative cancellation. It is safe from any goroutine,
// idempotent, and has no effect once the session has stopped. The worker
// honors it at the next progress-line boundary or process-exit check.
func (s *Session) Cancel() {
	s.state.requestCancel()
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	return s.state.snapshot()
}

// Status returns the terminal status of the last run, or empty while a run
// is live or before the first run.
func (s *Session) Status() Status {
	return s.state.terminalStatus()
}

// Done returns a channel closed when the current run's worker exits. It
// returns an already-closed channel when no run is live.
func (s *Session) Done() <-chan struct{} {
	return s.state.doneChan()
}

func (s *Session) run(ctx context.Context, sessionID string, req Request, startedAt time.Time) {
	defer s.state.endRun()

	logger := s.logger.With(logging.String("session_id", sessionID))

	duration := 0.0
	if s.prober != nil {
		duration = s.prober.Duration(ctx, req.SourcePath)
	}
	if duration <= 0 {
		logger.Warn("source duration unknown; progress reporting disabled",
			logging.String("input", req.SourcePath))
	}

	plan := BuildPlan(req)
	args := plan.Args(req.SourcePath)
	logger.Info("launching ffmpeg",
		logging.String("command", s.binary+" "+strings.Join(args, " ")),
		logging.String("codec", plan.VideoCodec),
		logging.String("hwaccel", plan.HWAccel),
		logging.String("output", plan.OutputPath),
		logging.Float64("duration_seconds", duration),
	)

	status := s.encode(ctx, plan, args, duration, logger)
	finishedAt := time.Now().UTC()
	logger.Info("transcode session finished",
		logging.String("status", string(status)),
		logging.Bool("completed", status == StatusCompleted),
		logging.Duration("elapsed", finishedAt.Sub(startedAt)),
	)

	if s.recorder == nil {
		return
	}
	outcome := Outcome{
		SessionID:       sessionID,
		SourcePath:      req.SourcePath,
		TargetFormat:    req.TargetFormat,
		Device:          req.Device,
		VideoCodec:      plan.VideoCodec,
		OutputPath:      plan.OutputPath,
		Status:          status,
		Percent:         s.state.snapshot().Percent,
		DurationSeconds: duration,
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
	}
	if err := s.recorder.Record(ctx, outcome); err != nil {
		logger.Warn("failed to record session history", logging.Error(err))
	}
}

func (s *Session) encode(ctx context.Context, plan Plan, args []string, duration float64, logger *slog.Logger) Status {
	lock := flock.New(plan.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil || !locked {
		logger.Warn("output path is locked", logging.String("lock", lock.Path()), logging.Error(err))
		s.state.appendLog(logMarkerOutputBusy)
		s.state.finish(StatusFailed, 0)
		return StatusFailed
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	cmd := commandContext(ctx, s.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logger.Error("ffmpeg stdout pipe failed", logging.Error(err))
		s.state.appendLog(logMarkerSpawnFail)
		s.state.finish(StatusFailed, 0)
		return StatusFailed
	}
	cmd.Stderr = nil // engine diagnostics are discarded; the log carries probe output and markers

	if err := cmd.Start(); err != nil {
		logger.Error("ffmpeg failed to start", logging.Error(err))
		s.state.appendLog(logMarkerSpawnFail)
		s.state.finish(StatusFailed, 0)
		return StatusFailed
	}

	cancelled := s.consumeProgress(stdout, duration, logger)
	if cancelled {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		s.state.appendLog(logMarkerCancelled)
		s.state.finish(StatusCancelled, 0)
		return StatusCancelled
	}

	// The exit code is intentionally not consulted: only the output artifact
	// decides success. See the package doc.
	_ = cmd.Wait()
	if !outputUsable(plan.OutputPath) {
		s.state.appendLog(logMarkerEmptyOut)
		s.state.finish(StatusFailed, 0)
		return StatusFailed
	}
	s.state.appendLog(logMarkerCompleted)
	s.state.finish(StatusCompleted, 100)
	return StatusCompleted
}

// consumeProgress reads the progress stream line by line. The cancel flag is
// checked before each line is processed; on cancellation reading stops
// immediately without draining buffered output.
func (s *Session) consumeProgress(r io.Reader, totalSeconds float64, logger *slog.Logger) bool {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if s.state.cancelRequested() {
			return true
		}
		micros, ok := parseElapsedMicros(scanner.Text())
		if !ok {
			continue
		}
		fraction, ok := completionFraction(micros, totalSeconds)
		if !ok {
			continue
		}
		percent := fraction * 100
		s.state.setPercent(percent)
		logger.Debug("encode progress",
			logging.Int64("elapsed_us", micros),
			logging.Float64("percent", percent),
		)
	}
	return s.state.cancelRequested()
}

func outputUsable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
