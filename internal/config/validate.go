package config

import (
	"fmt"

	"ffui/internal/encoding"
	"ffui/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if !encoding.ValidFormat(c.Transcode.DefaultFormat) {
		return services.Wrap(services.ErrConfiguration, "config", "transcode.default_format",
			fmt.Sprintf("unsupported container %q", c.Transcode.DefaultFormat), nil)
	}
	if _, ok := encoding.ParseDevice(c.Transcode.DefaultDevice); !ok {
		return services.Wrap(services.ErrConfiguration, "config", "transcode.default_device",
			fmt.Sprintf("unknown device %q", c.Transcode.DefaultDevice), nil)
	}
	return nil
}
