package encoding

import "strings"

// Device selects the hardware path ffmpeg uses for encoding.
type Device string

const (
	DeviceCPU    Device = "CPU"
	DeviceNVIDIA Device = "NVIDIA"
	DeviceIntel  Device = "Intel"
	DeviceAMD    Device = "AMD"
)

// Devices returns the devices the planner recognizes.
func Devices() []Device {
	return []Device{DeviceCPU, DeviceNVIDIA, DeviceIntel, DeviceAMD}
}

// ParseDevice matches a device name case-insensitively. It is a command
// boundary helper; the planner itself treats anything unrecognized as CPU.
func ParseDevice(value string) (Device, bool) {
	trimmed := strings.TrimSpace(value)
	for _, device := range Devices() {
		if strings.EqualFold(trimmed, string(device)) {
			return device, true
		}
	}
	return "", false
}

var targetFormats = []string{"mp4", "avi", "mkv", "mov", "flv", "wmv", "mp3", "aac", "wav", "ogg"}

// Formats returns the supported target containers.
func Formats() []string {
	return append([]string(nil), targetFormats...)
}

// ValidFormat reports whether value names a supported target container.
func ValidFormat(value string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	for _, format := range targetFormats {
		if trimmed == format {
			return true
		}
	}
	return false
}

// Request describes one transcode attempt. The source path is validated by
// the caller; a request is immutable once a session starts.
type Request struct {
	SourcePath   string
	TargetFormat string
	Device       Device
}
