package commands

// Flags holds the global options shared by every command.
type Flags struct {
	LogLevel string
}
