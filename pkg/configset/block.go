package configset

import (
	"strings"

	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/pathutil"
)

// Block is one ordered group of field assignments gated by a criteria
// predicate. Blocks are appended to a ConfigSet and never reordered or
// removed; once any compiled view references a block it must not change.
type Block struct {
	// values maps field names to stored values; the value type is owned by
	// the field descriptor.
	values map[string]interface{}

	// crit decides whether the block applies to a query context. Immutable
	// after construction.
	crit *criteria.Criteria

	// baseDir is the lowercase directory file-path terms are made relative
	// to before criteria evaluation. Empty when the block has none.
	baseDir string

	// removals maps field names to the ordered removal patterns recorded by
	// Remove, in normalized (lowercased, compiled) form.
	removals map[string][]removePattern
}

// removePattern is one normalized exclusion rule. matcher is nil for
// literal patterns, which compare by exact lowercase equality.
type removePattern struct {
	value   string
	matcher pathutil.Matcher
}

func newBlock(crit *criteria.Criteria, baseDir string) *Block {
	return &Block{
		values:  make(map[string]interface{}),
		crit:    crit,
		baseDir: strings.ToLower(pathutil.Normalize(baseDir)),
	}
}

// Criteria returns the block's predicate.
func (b *Block) Criteria() *criteria.Criteria {
	return b.crit
}

// BaseDirectory returns the block's lowercase base directory, or "" when
// the block has none.
func (b *Block) BaseDirectory() string {
	if b.baseDir == "." {
		return ""
	}
	return b.baseDir
}

// matches applies the block's base-directory rewrite and evaluates its
// predicate. Compiled sets bypass this entirely.
func (b *Block) matches(scan *scanContext) bool {
	return b.crit.Matches(scan.forBaseDir(b.BaseDirectory()))
}

func (b *Block) addRemovals(name string, patterns []string) error {
	if b.removals == nil {
		b.removals = make(map[string][]removePattern)
	}
	for _, p := range patterns {
		rp := removePattern{value: strings.ToLower(pathutil.Normalize(p))}
		if pathutil.HasWildcard(rp.value) {
			m, err := pathutil.CompileWildcard(rp.value)
			if err != nil {
				return err
			}
			rp.matcher = m
		}
		b.removals[name] = append(b.removals[name], rp)
	}
	return nil
}

// scanContext derives per-block query contexts during a scan without ever
// mutating the caller's context. Consecutive blocks commonly share a base
// directory, so the last derived context is memoized.
type scanContext struct {
	base    criteria.Context
	lastDir string
	lastCtx criteria.Context
}

func newScanContext(ctx criteria.Context) *scanContext {
	return &scanContext{base: ctx}
}

// forBaseDir returns the query context adjusted for a block's base
// directory: the file-path term is rewritten relative to the directory so
// file criteria written inside that directory match. The caller's map is
// returned untouched when no rewrite applies.
func (s *scanContext) forBaseDir(dir string) criteria.Context {
	files, ok := s.base[criteria.FilesKey]
	if dir == "" || !ok {
		return s.base
	}
	if dir == s.lastDir && s.lastCtx != nil {
		return s.lastCtx
	}
	derived := make(criteria.Context, len(s.base))
	for k, v := range s.base {
		derived[k] = v
	}
	derived[criteria.FilesKey] = strings.ToLower(pathutil.Relative(dir, files))
	s.lastDir = dir
	s.lastCtx = derived
	return derived
}
