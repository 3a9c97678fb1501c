package configset

import (
	"strings"

	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/field"
)

// Fetch resolves the effective value of f for a query context. A nil ctx
// defaults to the current block's own criteria terms, which makes queries
// issued mid-construction see the values stored so far for that scope.
//
// Mergeable fields always resolve to a container (possibly empty) and ok
// is always true. For scalar fields ok is false when no block anywhere in
// the chain matches; absence is a normal outcome, never an error.
// Composite values are deep-copied before being returned, so callers can
// never alias block storage.
func (cs *ConfigSet) Fetch(f *field.Field, ctx criteria.Context) (interface{}, bool) {
	if ctx == nil {
		ctx = cs.defaultContext()
	}
	if f.Mergeable() {
		return cs.fetchMerged(f, ctx), true
	}
	return cs.fetchDirect(f, ctx)
}

func (cs *ConfigSet) defaultContext() criteria.Context {
	if cs.current == nil {
		return criteria.Context{}
	}
	return cs.current.Criteria().ContextTerms()
}

// fetchDirect implements override semantics: the last matching block wins.
// Blocks are scanned in reverse insertion order; a set with no matching
// block defers entirely to its parent, with the original (unrewritten)
// context.
func (cs *ConfigSet) fetchDirect(f *field.Field, ctx criteria.Context) (interface{}, bool) {
	scan := newScanContext(ctx)
	for i := len(cs.blocks) - 1; i >= 0; i-- {
		b := cs.blocks[i]
		value, ok := b.values[f.Name]
		if !ok {
			continue
		}
		// Compiled sets were filtered against the query context already,
		// including the per-block base-directory rewrite.
		if cs.compiled || b.matches(scan) {
			return f.Copy(value), true
		}
	}
	if cs.parent != nil {
		return cs.parent.fetchDirect(f, ctx)
	}
	return nil, false
}

// fetchMerged implements accumulation semantics. The parent's merged
// result seeds the accumulator so parent contributions carry the lowest
// precedence, then this set's blocks contribute in insertion order. A
// matching block's removal patterns are applied before its own additions.
// The accumulator is always freshly constructed; it never aliases block
// storage.
func (cs *ConfigSet) fetchMerged(f *field.Field, ctx criteria.Context) interface{} {
	var acc interface{}
	if cs.parent != nil {
		acc = cs.parent.fetchMerged(f, ctx)
	} else {
		acc = f.EmptyValue()
	}

	scan := newScanContext(ctx)
	for _, b := range cs.blocks {
		if !cs.compiled && !b.matches(scan) {
			continue
		}
		if patterns := b.removals[f.Name]; len(patterns) > 0 && f.Kind.Removable() {
			acc = applyRemovals(acc, patterns)
		}
		if value, ok := b.values[f.Name]; ok {
			acc = f.Merge(acc, value)
		}
	}
	return acc
}

// applyRemovals strips accumulated entries whose lowercase form matches
// any pattern: compiled wildcard match for patterns with metacharacters,
// exact equality otherwise.
func applyRemovals(acc interface{}, patterns []removePattern) interface{} {
	list, ok := acc.([]string)
	if !ok {
		return acc
	}
	kept := list[:0]
	for _, entry := range list {
		lowered := strings.ToLower(entry)
		removed := false
		for _, p := range patterns {
			if p.matcher != nil {
				if p.matcher.Match(lowered) {
					removed = true
					break
				}
			} else if p.value == lowered {
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, entry)
		}
	}
	return kept
}
