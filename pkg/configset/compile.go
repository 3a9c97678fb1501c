package configset

import (
	"github.com/quarry-build/quarry/pkg/criteria"
)

// Compile pre-filters the set against a fixed query context, returning a
// read-only view for repeated fast lookups. The parent chain is compiled
// recursively first, then this set's blocks are tested in insertion order
// with the same base-directory rewrite fetch applies; matching blocks are
// appended by reference, never copied. Fetch on the result skips predicate
// evaluation entirely.
//
// The source set and the compiled view share block storage: after
// compiling, callers must not store into the source's existing blocks
// again. Adding fresh blocks to the source is safe; they are simply not
// part of the view.
func (cs *ConfigSet) Compile(filter criteria.Context) *ConfigSet {
	result := New(nil)
	if cs.parent != nil {
		result.parent = cs.parent.Compile(filter)
	}

	scan := newScanContext(filter)
	for _, b := range cs.blocks {
		if cs.compiled || b.matches(scan) {
			result.blocks = append(result.blocks, b)
		}
	}
	result.compiled = true
	return result
}
