// Package services defines the shared error taxonomy for external tool
// integrations.
//
// Failures are tagged with sentinel markers (external tool, validation,
// configuration) so callers can classify them with errors.Is without parsing
// message text. Wrap builds uniform error strings that carry component and
// operation context alongside the marker.
package services
