// Package matching groups person records into clusters that share contact
// keys.
//
// Keys extracts the linkage keys a record contributes under a Mode (its email,
// its phone, or both). Builder consumes records in input order and keeps a
// key index plus a disjoint-set forest over cluster identifiers; when a record
// carries keys already owned by two or more clusters, those clusters are
// merged and every later lookup of any of their keys resolves to the merged
// cluster. Result resolves each record through all merges, so records linked
// by any chain of shared keys end up with the same person identifier no matter
// where in the input the bridging record appears.
//
// Matching is exact string equality on raw field values. Callers that need
// case folding or phone normalization must clean the input first.
package matching
