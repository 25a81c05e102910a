package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures to launch or drive an external binary.
	// These are environment problems (ffmpeg/ffprobe missing or broken) and
	// are surfaced to the caller rather than absorbed into session state.
	ErrExternalTool = errors.New("external tool error")

	// ErrValidation marks rejected input at a command boundary.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsExternalTool reports whether err is tagged as an external tool failure.
func IsExternalTool(err error) bool {
	return errors.Is(err, ErrExternalTool)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
