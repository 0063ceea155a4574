// Package preflight provides readiness checks for the filesystem paths and
// the run journal that personmatch depends on.
//
// The CLI "config validate" command runs them to show whether a match run
// would be able to write its output and journal entry. Checks never create
// anything; a missing output directory passes when its nearest existing
// ancestor is writable, since the resolver creates it on demand.
package preflight
