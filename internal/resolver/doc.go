// Package resolver runs one identity-resolution pass end to end: it validates
// the request, loads the input table, assigns person identifiers, writes the
// annotated copy, and journals the outcome.
//
// Stages run strictly in sequence and check the context between them. Output
// is written atomically under an advisory lock, so a failed or concurrent run
// never leaves a partial file behind.
package resolver
