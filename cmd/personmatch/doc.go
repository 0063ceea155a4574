// Package main hosts the personmatch CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into resolver runs,
// journal listings, and configuration scaffolding. Configuration, logging,
// and the run journal are wired lazily in commandContext so subcommands that
// do not need them stay cheap.
package main
