package config

const (
	defaultConfigPath  = "~/.config/personmatch/config.toml"
	projectConfigName  = "personmatch.toml"
	defaultOutputDir   = "output"
	defaultStateDir    = "~/.local/share/personmatch"
	defaultLogDir      = "~/.local/share/personmatch/logs"
	defaultDelimiter   = ","
	defaultHistoryRows = 20
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	historyFileName    = "history.db"
	lockDirName        = "locks"
	logFileName        = "personmatch.log"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Input: Input{
			Delimiter: defaultDelimiter,
		},
		History: History{
			Enabled: true,
			Limit:   defaultHistoryRows,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
