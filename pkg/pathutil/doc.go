// Package pathutil provides the path primitives used by criteria matching
// and configuration resolution.
//
// All functions operate on slash-separated paths regardless of host OS;
// build definitions are written with forward slashes and matched
// case-insensitively after lowercasing. Wildcard patterns follow the build
// tool convention: "*" matches within a single path segment, "**" crosses
// segment boundaries.
package pathutil
