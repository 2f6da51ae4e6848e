package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/scan"
	"github.com/betterleaks/regexgrep/sources"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(grepCmd)
	grepCmd.Flags().StringP("dir", "d", ".", "directory the glob is resolved under")
	grepCmd.Flags().StringSlice("keyword", []string{}, "only scan files containing one of these keywords (case-insensitive)")
	grepCmd.Flags().Bool("skip-symlinks", false, "do not read files that are symlinks")
	grepCmd.Flags().Bool("skip-binary", false, "do not read files detected as binary")
	grepCmd.Flags().StringP("ignore-path", "i", "", "path to .regexgrepignore file or folder containing one")
	grepCmd.Flags().String("engine", "", "regex engine (stdlib, re2); defaults to the config's engine")
}

var grepCmd = &cobra.Command{
	Use:   "grep [flags] <glob> <pattern> [group...]",
	Short: "print the file name and capture groups of every line matching pattern",
	Long: `Resolve glob under --dir, apply pattern to every line of every file and
print the file name followed by the capture groups of each matching line.

Without group arguments every capture group is printed in order. Group
arguments select groups by 1-based index in the order given and may repeat.
As an extension to the usual 1-based indices, 0 selects the whole match.

The config's ignore, skipSymlinks, skipBinary and maxFileSize settings apply;
flags given on the command line take precedence.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGrep,
}

func runGrep(cmd *cobra.Command, args []string) error {
	groups, err := parseGroups(args[2:])
	if err != nil {
		return err
	}

	dir := mustGetStringFlag(cmd, "dir")
	if dir == "" {
		dir = "."
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	q := cfg.Apply(scan.Query{
		Dir:         dir,
		Glob:        args[0],
		Pattern:     args[1],
		Groups:      groups,
		Keywords:    mustGetStringSliceFlag(cmd, "keyword"),
		Engine:      mustGetStringFlag(cmd, "engine"),
		Ignore:      sources.LoadIgnoreFiles(mustGetStringFlag(cmd, "ignore-path"), dir),
		MaxFileSize: int64(mustGetIntFlag(cmd, "max-target-megabytes")) * 1_000_000,
	})
	// explicit flags win over the config, including --skip-binary=false
	if cmd.Flags().Changed("skip-symlinks") {
		q.SkipSymlinks = mustGetBoolFlag(cmd, "skip-symlinks")
	}
	if cmd.Flags().Changed("skip-binary") {
		q.SkipBinary = mustGetBoolFlag(cmd, "skip-binary")
	}

	start := time.Now()
	matches, err := scan.GrepMatches(cmd.Context(), q)
	if err != nil {
		return err
	}
	logging.Debug().
		Int("matches", len(matches)).
		Dur("elapsed", time.Since(start)).
		Msg("scan completed")

	if err := writeReport(cmd, matches); err != nil {
		return err
	}
	if len(matches) == 0 {
		return errNotMatched
	}
	return nil
}

// parseGroups converts group index arguments.
func parseGroups(args []string) ([]int, error) {
	groups := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: group index %q is not a non-negative integer", regexgrep.ErrInvalidArgument, arg)
		}
		groups = append(groups, n)
	}
	return groups, nil
}
