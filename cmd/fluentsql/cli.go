package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLI wires the cobra commands to a viper instance and the process streams
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	logger     *slog.Logger
	closeLog   func() error
}

// NewCLI creates the command tree reading from stdin and writing to stdout and stderr
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.rootCmd.AddCommand(cli.newQueryCommand())
	cli.rootCmd.AddCommand(cli.newFormatsCommand())

	return cli
}

// Execute runs the command line and releases the log file afterwards
func (cli *CLI) Execute() error {
	err := cli.rootCmd.Execute()
	if cli.closeLog != nil {
		_ = cli.closeLog()
		cli.closeLog = nil
	}
	return err
}

// setupViperConfig configures environment variable support.
// The config file itself is read once flags are parsed, see loadConfig.
func (cli *CLI) setupViperConfig() {
	cli.viperInst.SetEnvPrefix("FLUENTSQL")
	// --log-level -> FLUENTSQL_LOG_LEVEL
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()
}

// loadConfig reads the config file named by --config or FLUENTSQL_CONFIG, or
// searches for fluentsql.yaml in the working directory and the user config dir.
// A missing default config file is not an error.
func (cli *CLI) loadConfig() error {
	explicit := cli.configFile
	if explicit == "" {
		explicit = os.Getenv("FLUENTSQL_CONFIG")
	}

	if explicit != "" {
		cli.viperInst.SetConfigFile(explicit)
	} else {
		cli.viperInst.SetConfigName("fluentsql")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.config/fluentsql")
	}

	if err := cli.viperInst.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return NewConfigError("load configuration", err.Error(),
			"Check that the file exists and is valid YAML",
			CommonSuggestions.CheckConfig)
	}
	return nil
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "fluentsql",
		Short: "Query JSON and YAML collections with a fluent query builder",
		Long: `fluentsql filters, projects, orders and limits the records of a
JSON or YAML collection file.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (FLUENTSQL_*)
3. Configuration file (--config, FLUENTSQL_CONFIG, ./fluentsql.yaml,
   ~/.config/fluentsql/fluentsql.yaml)
4. Defaults

Examples:
  # Developers whose name starts with M, names only
  fluentsql query people.json --where category=Developer --where 'name=^M' --select name

  # Read YAML from stdin, first three by name
  cat people.yaml | fluentsql query - --input-format yaml --order-by name --limit 3`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.loadConfig(); err != nil {
				return err
			}
			return cli.setupLogging()
		},
	}

	cli.rootCmd.SetIn(cli.stdin)
	cli.rootCmd.SetOut(cli.stdout)
	cli.rootCmd.SetErr(cli.stderr)

	flags := cli.rootCmd.PersistentFlags()
	flags.StringVar(&cli.configFile, "config", "", "Config file (default ./fluentsql.yaml)")
	flags.String("log-level", "warn", "Log level: debug|info|warn|error")
	flags.String("log-file", "", "Also write JSON logs to this file")

	cli.bindFlags(flags, "log-level", "log-file")
}

// bindFlags binds the named flags to viper keys of the same name
func (cli *CLI) bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = cli.viperInst.BindPFlag(name, flags.Lookup(name))
	}
}

// setupLogging replaces the discarding logger with the configured one
func (cli *CLI) setupLogging() error {
	logger, closeLog, err := initLogging(
		cli.viperInst.GetString("log-level"),
		cli.viperInst.GetString("log-file"),
		cli.stderr,
	)
	if err != nil {
		return NewConfigError("set up logging", err.Error(), CommonSuggestions.CheckPerms)
	}

	cli.logger = logger
	cli.closeLog = closeLog
	return nil
}
