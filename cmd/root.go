package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vienton/cs344-smallsh/core"
	"github.com/vienton/cs344-smallsh/core/config"
	"github.com/vienton/cs344-smallsh/core/logger"
)

var (
	cfgPath     string
	commandLine string
)

// loadConfig reads the configuration, falling back to the built-in
// defaults when the directory was never initialized.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd runs the shell itself when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smallsh",
	Short: "A small interactive shell with background job control.",
	Long: `smallsh is a small interactive shell.

It prompts with ": ", expands $$ to the shell's PID, redirects stdin
and stdout with < and >, and runs command lines ending in & in the
background. The exit, cd, and status commands are builtins that run in
the shell itself. Ctrl+Z toggles foreground-only mode, where & is
ignored.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		events := logger.NewNopLogRecorder()
		var eventLog io.Closer
		if configuration.EventLog {
			fd, err := configuration.OpenAppLog()
			if err != nil {
				return err
			}
			eventLog = fd
			events = logger.NewJsonLinesLogRecorder(fd)
		}
		closeEventLog := func() {
			if eventLog != nil {
				eventLog.Close()
			}
		}

		shell, err := core.NewShell(configuration, events)
		if err != nil {
			closeEventLog()
			return err
		}

		var code int
		if commandLine != "" {
			code = shell.RunCommandLine(commandLine)
		} else {
			code = shell.Run()
		}

		// Close explicitly rather than deferring so the log is flushed
		// before the process exits.
		shell.Close()
		closeEventLog()
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
}
