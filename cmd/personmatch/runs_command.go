package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"personmatch/internal/history"
	"personmatch/internal/services"
)

var errHistoryDisabled = errors.New("run history is disabled (set history.enabled = true)")

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent match runs",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.historyStore()
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			if store == nil {
				return errHistoryDisabled
			}
			if limit < 0 {
				return services.Wrap(services.ErrInvalidArgument, "", "limit", "must not be negative", nil)
			}
			if limit == 0 {
				limit = cfg.History.Limit
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to show (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	cmd.AddCommand(newRunsShowCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run in detail",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore()
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			if store == nil {
				return errHistoryDisabled
			}
			id := strings.TrimSpace(args[0])
			run, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if run == nil {
				return services.Wrap(services.ErrInvalidArgument, "", "runs show", fmt.Sprintf("run %s not found", id), nil)
			}
			if jsonOutput {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Status:   %s\n", run.Status)
			fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Duration: %s\n", run.Duration)
			fmt.Fprintf(out, "Mode:     %s\n", run.Mode)
			fmt.Fprintf(out, "Input:    %s\n", run.InputPath)
			if run.OutputPath != "" {
				fmt.Fprintf(out, "Output:   %s\n", run.OutputPath)
			}
			fmt.Fprintf(out, "Records:  %d\n", run.Records)
			fmt.Fprintf(out, "People:   %d\n", run.Clusters)
			fmt.Fprintf(out, "Merges:   %d\n", run.Merges)
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func renderRunsTable(runs []history.Run, colorize bool) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := string(run.Status)
		if run.Succeeded() {
			status = colorText(status, ansiGreen, colorize)
		} else {
			status = colorText(status, ansiRed, colorize)
		}
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Mode,
			strconv.Itoa(run.Records),
			strconv.Itoa(run.Clusters),
			status,
			run.InputPath,
		})
	}
	return renderTable([]column{
		textColumn("Run"),
		textColumn("Started"),
		textColumn("Mode"),
		numericColumn("Records"),
		numericColumn("People"),
		textColumn("Status"),
		textColumn("Input"),
	}, rows)
}

func shortRunID(id string) string {
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		return id[:idx]
	}
	return id
}
