// Package field defines the field descriptors that drive configuration
// resolution: each field names a build-definition setting, declares its
// kind, and supplies the kind-specific store, merge, and removal behavior
// the resolution engine delegates to.
//
// Descriptors live in a Registry that callers construct and inject
// explicitly; there is no process-wide registry, so tests can run against
// small custom field sets. DefaultRegistry returns the builtin
// build-definition fields.
//
// # Kinds
//
//   - string, path, integer, boolean: scalar, override semantics (the last
//     matching block wins).
//   - list, pathlist: ordered string lists, merge semantics (values
//     accumulate across matching blocks in order).
//   - keyed: string-keyed maps, merge semantics.
//
// Removal patterns apply to the ordered list kinds only. Keyed fields
// accumulate but cannot have entries removed; this is a known limitation
// carried over from the original resolution semantics.
package field
