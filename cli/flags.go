package cli

var (
	verbose bool

	// all commands
	configPath string

	// for replay and server start
	assumeMaximized bool

	// for server start
	pidFile string
	logFile string
)
