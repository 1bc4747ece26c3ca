package config

const (
	defaultLibraryDir        = "~/.local/share/trec/library"
	defaultLogDir            = "~/.local/share/trec/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultMinDelayMS        = 50
	defaultPlaybackSpeed     = 1.0
	defaultDeadTimeThreshold = int64(3000)
	defaultDeadTimeCap       = int64(1000)
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Playback: Playback{
			MinDelayMS:   defaultMinDelayMS,
			DefaultSpeed: defaultPlaybackSpeed,
		},
		DeadTime: DeadTime{
			ThresholdMS: defaultDeadTimeThreshold,
			CapMS:       defaultDeadTimeCap,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
