package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"personmatch/internal/config"
	"personmatch/internal/logging"
	"personmatch/internal/matching"
	"personmatch/internal/resolver"
	"personmatch/internal/services"
	"personmatch/internal/table"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var outputDirFlag string
	var jsonOutput bool
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "match <input> [mode]",
		Short: "Assign a shared person_id to rows that belong to the same person",
		Long: fmt.Sprintf(`Read a CSV file with email and phone columns, group rows that share a
value under the chosen matching type, and write a copy with a person_id
column prepended to <output_dir>/output_<input file name>.

Matching types: %s.
The type may be given as the second argument, with --mode, or through
matching.default_mode in the configuration file.`, strings.Join(matching.Modes(), ", ")),
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			mode, err := resolveMode(args, modeFlag, cfg)
			if err != nil {
				return err
			}
			outputDir := cfg.Paths.OutputDir
			if trimmed := strings.TrimSpace(outputDirFlag); trimmed != "" {
				if outputDir, err = config.ExpandPath(trimmed); err != nil {
					return services.Wrap(services.ErrInvalidArgument, "", "output-dir", trimmed, err)
				}
			}

			logger := ctx.loggerValue()
			opts := resolver.Options{
				InputPath: args[0],
				Mode:      mode,
				OutputDir: outputDir,
				LockDir:   cfg.LockDir(),
				Table: table.Options{
					Delimiter:  cfg.DelimiterRune(),
					LazyQuotes: cfg.Input.LazyQuotes,
				},
				Logger: logger,
			}
			store, err := ctx.historyStore()
			if err != nil {
				logging.WarnWithContext(logger, "run journal unavailable", "history_open_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "this run will not be listed by `personmatch runs`"),
				)
			} else if store != nil {
				opts.Journal = store
			}

			r, err := resolver.New(opts)
			if err != nil {
				return err
			}
			summary, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, colorText("Processing complete. Output written to: "+summary.OutputPath, ansiGreen, colorize))
			if showSummary {
				printMatchSummary(out, summary, colorize)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Matching type ("+strings.Join(matching.Modes(), ", ")+")")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for the output file (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print cluster statistics after the run")
	return cmd
}

// resolveMode picks the matching type from the positional argument, the
// --mode flag, or the configured default, in that order. Values pass through
// untouched; the resolver rejects anything but an exact spelling.
func resolveMode(args []string, flagValue string, cfg *config.Config) (string, error) {
	positional := ""
	if len(args) > 1 {
		positional = args[1]
	}
	switch {
	case positional != "" && flagValue != "" && positional != flagValue:
		return "", services.Wrap(services.ErrInvalidArgument, "", "mode",
			fmt.Sprintf("conflicting matching types %q and --mode %q", positional, flagValue), nil)
	case positional != "":
		return positional, nil
	case flagValue != "":
		return flagValue, nil
	case cfg != nil:
		return cfg.Matching.DefaultMode, nil
	default:
		return "", nil
	}
}

func printMatchSummary(out io.Writer, summary *resolver.Summary, colorize bool) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run:        %s\n", summary.RunID)
	fmt.Fprintf(out, "Mode:       %s\n", summary.Mode)
	fmt.Fprintf(out, "Records:    %d\n", summary.Records)
	fmt.Fprintf(out, "People:     %d\n", summary.Clusters)
	duplicates := strconv.Itoa(summary.Duplicates)
	if summary.Duplicates > 0 {
		duplicates = colorText(duplicates, ansiYellow, colorize)
	}
	fmt.Fprintf(out, "Duplicates: %s\n", duplicates)
	fmt.Fprintf(out, "Merges:     %d\n", summary.Merges)
	fmt.Fprintf(out, "Duration:   %s\n", summary.Duration.Round(time.Millisecond))

	if len(summary.Largest) == 0 {
		fmt.Fprintln(out, "\nNo records were merged.")
		return
	}
	rows := make([][]string, 0, len(summary.Largest))
	for _, cluster := range summary.Largest {
		rows = append(rows, []string{
			strconv.Itoa(cluster.ID),
			strconv.Itoa(cluster.Size),
			strconv.Itoa(cluster.First + 1),
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]column{numericColumn("Person ID"), numericColumn("Records"), numericColumn("First Row")},
		rows,
	))
}
