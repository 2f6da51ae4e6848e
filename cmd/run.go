package cmd

import (
	"fmt"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/config"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/scan"
	"github.com/fatih/semgroup"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("dir", "d", ".", "directory queries without a dir are resolved under")
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [query...]",
	Short: "run the named queries from the config, or all of them",
	Long: `Run queries declared in the config file. Queries run concurrently, bounded
by the config's concurrency, and their reports are written one after another
in declaration order.`,
	RunE: runQueries,
}

func runQueries(cmd *cobra.Command, args []string) error {
	dir := mustGetStringFlag(cmd, "dir")
	if dir == "" {
		dir = "."
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	queries, err := selectQueries(cfg, args)
	if err != nil {
		return err
	}

	maxFileSize := int64(mustGetIntFlag(cmd, "max-target-megabytes")) * 1_000_000
	for i := range queries {
		if queries[i].Dir == "" {
			queries[i].Dir = dir
		}
		if maxFileSize > 0 {
			queries[i].MaxFileSize = maxFileSize
		}
	}

	results := make([][]regexgrep.Match, len(queries))
	sg := semgroup.NewGroup(cmd.Context(), int64(cfg.Concurrency))
	for i, q := range queries {
		sg.Go(func() error {
			matches, err := scan.GrepMatches(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("query %q: %w", q.Name, err)
			}
			results[i] = matches
			return nil
		})
	}
	if err := sg.Wait(); err != nil {
		return err
	}

	total := 0
	for i, matches := range results {
		logging.Info().
			Str("query", queries[i].Name).
			Int("matches", len(matches)).
			Msg("query completed")
		total += len(matches)
		if err := writeReport(cmd, matches); err != nil {
			return err
		}
	}
	if total == 0 {
		return errNotMatched
	}
	return nil
}

// selectQueries returns the named queries in config order, or all of them
// when no names are given.
func selectQueries(cfg config.Config, names []string) ([]scan.Query, error) {
	if len(names) == 0 {
		return append([]scan.Query(nil), cfg.Queries...), nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := cfg.Query(name); !ok {
			return nil, fmt.Errorf("%w: unknown query %q", regexgrep.ErrInvalidArgument, name)
		}
		wanted[name] = struct{}{}
	}

	var selected []scan.Query
	for _, q := range cfg.Queries {
		if _, ok := wanted[q.Name]; ok {
			selected = append(selected, q)
		}
	}
	return selected, nil
}
