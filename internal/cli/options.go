package cli

// RunOptions contains the configuration shared by the CLI commands.
type RunOptions struct {
	File      string
	Debug     bool
	LogFormat string
	Render    bool
	JSON      bool
	Watch     bool
	ShowState bool
}
