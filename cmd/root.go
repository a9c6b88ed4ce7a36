package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/radiofrance/testlog2junit/internal/logger"
	"github.com/radiofrance/testlog2junit/pkg/convert"
)

const (
	appName         = "testlog2junit"
	configName      = "." + appName
	defaultLogLevel = "info"

	exitCodeSuccess     = 0
	exitCodeFailure     = 1
	exitCodeConfigError = 2
)

// flagKeys maps flags to nested configuration keys. Other flags use their snake_case name.
var flagKeys = map[string]string{
	"s3-bucket": "s3.bucket",
	"s3-region": "s3.region",
	"s3-prefix": "s3.prefix",
}

// usageError marks errors caused by the way the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err: err}
	}

	return nil
}

// Execute runs the root command with the process arguments and exits with the matching status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger.SetOutput(stderr)

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	failedCmd, err := rootCmd.ExecuteC()
	if err == nil {
		return exitCodeSuccess
	}

	var (
		usageErr *usageError
		cfgErr   *convert.ConfigError
	)

	if errors.As(err, &usageErr) || errors.As(err, &cfgErr) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\n%s", err, failedCmd.UsageString())
		return exitCodeConfigError
	}

	logger.Errorf("%v", err)

	return exitCodeFailure
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	v := viper.New()

	rootCmd := &cobra.Command{
		Use: appName,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Short: "Convert a test execution log into a JUnit XML report",
		Long: `testlog2junit reads the log written by a test run and generates a JUnit-style XML report
that CI servers can display.

The log is expected to contain, for each test:
  Running <suite>::<name>    starts a test
  OK | FAILED                sets its outcome
  Test took <duration>ns     ends it
Any other line is attached to the running test as diagnostic output.`,
		Example:       `  testlog2junit -i testlog.log -o test_results.xml`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindPFlags(v, cmd.Flags()); err != nil {
				return err
			}

			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.SetLevel(&cfg.LogLevel)

			return convert.New(cmd.OutOrStdout()).Run(cmd.Context(), cfg)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/.testlog2junit.yaml or ./.testlog2junit.yaml)")
	flags.StringP("input", "i", convert.DefaultInput, "Path of the test log to parse.")
	flags.StringP("output", "o", convert.DefaultOutput, "Path of the JUnit XML report to write.")
	flags.StringP("log-level", "l", defaultLogLevel,
		`Log level. Can be any standard log-level ("debug", "info", "warning", "error", "fatal")`)
	flags.String("suite-name", "", "Name attribute of the generated testsuite element.")
	flags.Bool("summary", false, "Print a table of all parsed tests once the report is written.")
	flags.Bool("strip-colors", false, "Remove ANSI color sequences from diagnostic output.")
	flags.String("s3-bucket", "", "Publish the report to this S3 bucket once written.")
	flags.String("s3-region", "", "AWS region of the S3 bucket (default from the AWS environment).")
	flags.String("s3-prefix", "", "Key prefix of the published report inside the S3 bucket.")

	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(docgenCommand())

	return rootCmd
}

// loadConfig resolves the configuration from flags, TESTLOG2JUNIT_* environment variables and
// the optional config file, in that order of precedence.
func loadConfig(v *viper.Viper, cfgFile string) (convert.Config, error) {
	cfg := convert.DefaultConfig()

	v.SetConfigType("yaml")

	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv(strings.ToUpper(appName) + "_CONFIG")
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return cfg, &convert.ConfigError{Field: "config", Reason: fmt.Sprintf("config file %q not found", explicit)}
		}

		v.SetConfigFile(explicit)
	} else {
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(path.Join(homeDir, ".config"))
		}

		if workingDir, err := os.Getwd(); err == nil {
			v.AddConfigPath(workingDir)
		}

		v.SetConfigName(configName)
	}

	// Env vars starting with the TESTLOG2JUNIT_ prefix can override any configuration.
	// e.g. TESTLOG2JUNIT_OUTPUT, TESTLOG2JUNIT_S3_BUCKET, etc...
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return cfg, &convert.ConfigError{Field: "config", Reason: err.Error()}
		}

		logger.Debugf("No config file found, using flags and environment only")
	} else {
		logger.Debugf("Using config file: %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, &convert.ConfigError{Field: "config", Reason: err.Error()}
	}

	return cfg, nil
}

// bindPFlags binds the flags with viper values. The identifier of the viper value is the name of
// the flag with dashes replaced by underscores, unless flagKeys maps it to a nested key. This is
// required so we can retrieve values from viper with the same behaviour with config coming from
// files (my_config: "value") or from flags (--my-config=value).
func bindPFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" || flag.Name == "help" {
			return
		}

		key, ok := flagKeys[flag.Name]
		if !ok {
			key = strings.ReplaceAll(flag.Name, "-", "_")
		}

		if err := v.BindPFlag(key, flag); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("can't bind flag %q: %w", flag.Name, err)
		}
	})

	return bindErr
}
