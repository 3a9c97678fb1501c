package configset

import (
	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/field"
)

// ConfigSet is an ordered sequence of Blocks plus an optional parent set.
// Insertion order is precedence order for merged fields and reverse
// precedence for overridden fields. The zero value is not usable; call New.
type ConfigSet struct {
	// parent is the next set in the inheritance chain. Shared, not owned:
	// several child sets may point at the same parent. Nil at the root.
	parent *ConfigSet

	// blocks in insertion order. Never reordered.
	blocks []*Block

	// current is the mutation target: the most recently added block.
	current *Block

	// compiled marks a pre-filtered view whose blocks are shared references
	// into the source chain. Compiled sets must not be mutated.
	compiled bool
}

// New creates an empty ConfigSet inheriting from parent. parent may be nil
// for a root set and may be shared by multiple children; callers must not
// introduce cycles.
func New(parent *ConfigSet) *ConfigSet {
	return &ConfigSet{parent: parent}
}

// Parent returns the set this one inherits from, or nil.
func (cs *ConfigSet) Parent() *ConfigSet {
	return cs.parent
}

// Empty reports whether this set has no blocks of its own. The parent
// chain is not consulted.
func (cs *ConfigSet) Empty() bool {
	return len(cs.blocks) == 0
}

// Compiled reports whether this set is a pre-filtered view.
func (cs *ConfigSet) Compiled() bool {
	return cs.compiled
}

// AddBlock appends a new block gated by criteria built from terms and
// makes it the mutation target. baseDir, when non-empty, is lowercased and
// recorded for path-relative file matching. The only possible error is a
// malformed criteria term.
func (cs *ConfigSet) AddBlock(terms []string, baseDir string) (*Block, error) {
	crit, err := criteria.New(terms)
	if err != nil {
		return nil, err
	}
	b := newBlock(crit, baseDir)
	cs.blocks = append(cs.blocks, b)
	cs.current = b
	return b, nil
}

// Store writes a value for f into the current block, opening an
// unconditional block first if none exists. The field descriptor validates
// and folds the value; on rejection the block's prior value is left
// untouched and the descriptor's ValidationError is returned.
func (cs *ConfigSet) Store(f *field.Field, value interface{}) error {
	if cs.current == nil {
		if _, err := cs.AddBlock(nil, ""); err != nil {
			return err
		}
	}
	stored, err := f.Store(cs.current.values[f.Name], value)
	if err != nil {
		return err
	}
	cs.current.values[f.Name] = stored
	return nil
}

// Remove records removal patterns for f. A new block sharing the current
// block's criteria terms and base directory is always opened so the
// removal lands in its own ordering slot: after previously stored values,
// before later same-scope additions. Patterns are normalized by the field
// descriptor, then lowercased and wildcard-compiled.
//
// Removal patterns strip ordered list entries only. For keyed fields the
// patterns are still validated but merged fetch never strips keyed
// entries; once a key has been accumulated it cannot be removed.
func (cs *ConfigSet) Remove(f *field.Field, values interface{}) error {
	patterns, err := f.RemovePatterns(values)
	if err != nil {
		return err
	}

	var terms []string
	var baseDir string
	if cs.current != nil {
		terms = cs.current.crit.Terms()
		baseDir = cs.current.BaseDirectory()
	}
	b, err := cs.AddBlock(terms, baseDir)
	if err != nil {
		return err
	}
	return b.addRemovals(f.Name, patterns)
}
