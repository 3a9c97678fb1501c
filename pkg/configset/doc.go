// Package configset implements the configuration-resolution engine at the
// heart of the build-definition pipeline: given an ordered sequence of
// criteria-gated blocks of field assignments, it resolves the effective
// value of any field for any query context.
//
// # Model
//
// A ConfigSet is an ordered list of Blocks plus an optional parent set
// forming an inheritance chain (workspace -> project -> file). Each Block
// carries a criteria predicate deciding when its values apply, an optional
// base directory for path-relative file matching, and removal patterns.
//
// Scalar fields resolve with override semantics: blocks are scanned in
// reverse insertion order and the last matching block wins; a set with no
// matching block defers entirely to its parent. Mergeable fields resolve
// with accumulation semantics: the parent's result seeds the accumulator,
// then matching blocks contribute in insertion order, removal patterns
// stripping previously accumulated entries before a block's own additions.
//
// # Compiled sets
//
// Compile pre-filters a set against a fixed context, producing a read-only
// view whose blocks are shared references into the source set. Fetch on a
// compiled set skips predicate evaluation entirely, which makes it the fast
// path for contexts queried many times (one per source file, per target).
// Because blocks are shared, a block reachable from any compiled view must
// never be mutated again; mutation always targets the most recently added
// block, so this holds as long as callers do not interleave further stores
// on an already-compiled set's source.
//
// The engine is synchronous and single-threaded by design: it is the inner
// loop of a generation pipeline, not a service. Only Store can fail; all
// read paths are total, with "no value" reported distinctly from any
// legitimate stored value.
package configset
