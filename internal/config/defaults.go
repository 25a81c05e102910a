package config

const (
	defaultLogDir        = "~/.local/share/ffui/logs"
	defaultHistoryDB     = "~/.local/share/ffui/history.db"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultFormat        = "mp4"
	defaultDevice        = "CPU"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Transcode: Transcode{
			DefaultFormat: defaultFormat,
			DefaultDevice: defaultDevice,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
