// Package services defines shared helpers used by the resolver, the history
// journal, and the CLI.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag every failure
//     with the stage and operation that produced it, and ExitCode which turns
//     those markers into process exit statuses.
//   - Context helpers that stamp run identifiers and stage names so log lines
//     from one run can be correlated.
//
// Use these helpers when adding new stages so error classification and
// observability stay uniform.
package services
