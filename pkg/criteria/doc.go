// Package criteria implements the predicate that gates configuration
// blocks: a set of terms compiled once, then evaluated against a query
// context to decide whether a block's values apply.
//
// # Term syntax
//
// Each term is lowercased and parsed as:
//
//	[not ] [key:]alternative[ or alternative]...
//
// A keyed term ("configurations:debug") tests the context value stored
// under its key. An unkeyed term ("debug") tests every context value. A
// term passes when any of its alternatives matches; "not" inverts the
// result. Alternatives containing wildcards ("files:**.c") are compiled
// with separator-aware glob semantics, everything else compares exactly.
//
// # Context
//
// A Context maps lowercase keys (configurations, platforms, system, action,
// ...) to lowercase values. The reserved key "files" carries a slash path;
// configuration resolution rewrites it relative to a block's base directory
// before evaluation.
package criteria
