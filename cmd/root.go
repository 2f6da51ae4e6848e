package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/config"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/regexp"
	"github.com/betterleaks/regexgrep/report"
	"github.com/betterleaks/regexgrep/version"
	"github.com/spf13/cobra"
)

const configDescription = `config file path
order of precedence:
1. --config/-c
2. env var REGEXGREP_CONFIG
3. env var REGEXGREP_CONFIG_TOML with the file content
4. (search dir)/.regexgrep.toml
If none of the four options are used, then regexgrep will use the default config`

// Following the grep tool convention.
const (
	exitMatched    = 0
	exitNotMatched = 1
	exitError      = 2
)

const configFileName = ".regexgrep.toml"

// errNotMatched is returned by commands that ran fine but found nothing.
var errNotMatched = errors.New("no matches")

var rootCmd = &cobra.Command{
	Use:           "regexgrep",
	Short:         "regexgrep extracts regular expression captures from the lines of files matching a glob",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLog(cmd); err != nil {
			return err
		}
		// Set the timeout for all the commands
		if timeout, err := cmd.Flags().GetInt("timeout"); err != nil {
			return err
		} else if timeout > 0 {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
			cmd.SetContext(ctx)
			cobra.OnFinalize(cancel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", configDescription)
	rootCmd.PersistentFlags().StringP("report-path", "r", "", "report file (use \"-\" or leave empty for stdout)")
	rootCmd.PersistentFlags().StringP("report-format", "f", "flat", "output format (flat, json, csv)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().Bool("no-color", false, "turn off color for log output")
	rootCmd.PersistentFlags().Int("max-target-megabytes", 0, "files larger than this will be skipped")
	rootCmd.PersistentFlags().Int("timeout", 0, "set a timeout for regexgrep commands in seconds (default \"0\", no timeout is set)")
}

func initLog(cmd *cobra.Command) error {
	ll, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(ll)
	if err != nil {
		logging.Warn().Msg(err.Error())
	}
	if mustGetBoolFlag(cmd, "no-color") {
		logging.DisableColor()
	}
	logging.Logger = logging.Logger.Level(level)
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return exitCodeFor(rootCmd.Execute())
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitMatched
	case errors.Is(err, errNotMatched):
		return exitNotMatched
	default:
		logging.Error().Err(err).Msg("regexgrep failed")
		return exitError
	}
}

// loadConfig finds, parses and validates the config for a search rooted at
// dir.
func loadConfig(cmd *cobra.Command, dir string) (config.Config, error) {
	data, path, err := readConfig(cmd, dir)
	if err != nil {
		return config.Config{}, err
	}

	fc, err := config.Parse(data)
	if err != nil {
		return config.Config{}, err
	}
	// Tell the config which regexgrep version is loading it
	fc.SetCurrentVersion(version.Version)

	cfg, err := fc.Translate()
	if err != nil {
		return config.Config{}, err
	}
	cfg.Path = path
	if cfg.Engine == "" {
		cfg.Engine = regexp.EngineDefault
	}
	logging.Debug().Msgf("using %s regex engine", cfg.Engine)
	return cfg, nil
}

func readConfig(cmd *cobra.Command, dir string) ([]byte, string, error) {
	if cfgPath := mustGetStringFlag(cmd, "config"); cfgPath != "" {
		logging.Debug().Msgf("using regexgrep config %s from `--config`", cfgPath)
		return readConfigFile(cfgPath)
	}
	if envPath := os.Getenv("REGEXGREP_CONFIG"); envPath != "" {
		logging.Debug().Msgf("using regexgrep config from REGEXGREP_CONFIG env var: %s", envPath)
		return readConfigFile(envPath)
	}
	if content := os.Getenv("REGEXGREP_CONFIG_TOML"); content != "" {
		logging.Debug().Str("content", content).Msg("using regexgrep config from REGEXGREP_CONFIG_TOML env var content")
		return []byte(content), "", nil
	}

	local := filepath.Join(dir, configFileName)
	if fileExists(local) {
		logging.Debug().Msgf("using existing regexgrep config %s from `(--dir)/%s`", local, configFileName)
		return readConfigFile(local)
	}

	logging.Debug().Msgf("no regexgrep config found in path %s, using default config", local)
	return []byte(config.DefaultConfig), "", nil
}

func readConfigFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: unable to load regexgrep config: %v", regexgrep.ErrIO, err)
	}
	return data, path, nil
}

// writeReport writes matches in the requested format to the report path,
// or the command's output when no path is set.
func writeReport(cmd *cobra.Command, matches []regexgrep.Match) error {
	reporter, err := report.New(mustGetStringFlag(cmd, "report-format"))
	if err != nil {
		return err
	}

	reportPath := mustGetStringFlag(cmd, "report-path")
	if reportPath == "" || reportPath == "-" {
		return reporter.Write(nopWriteCloser{cmd.OutOrStdout()}, matches)
	}

	file, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
	}
	if err := reporter.Write(file, matches); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func fileExists(fileName string) bool {
	info, err := os.Stat(fileName)
	return err == nil && !info.IsDir()
}

func mustGetBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetIntFlag(cmd *cobra.Command, name string) int {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetStringSliceFlag(cmd *cobra.Command, name string) []string {
	value, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}
