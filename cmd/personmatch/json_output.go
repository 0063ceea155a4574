package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"personmatch/internal/history"
)

// writeJSON prints v for scripts. Paths are emitted verbatim and an empty run
// list prints as [] so consumers never have to special-case null.
func writeJSON(cmd *cobra.Command, v any) error {
	if runs, ok := v.([]history.Run); ok && runs == nil {
		v = []history.Run{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
