package criteria

import (
	"fmt"
	"strings"

	"github.com/quarry-build/quarry/pkg/pathutil"
)

// FilesKey is the reserved context key carrying a file path for
// base-directory-relative matching.
const FilesKey = "files"

// Context identifies where a value is being requested: a mapping from
// lowercase term keys to lowercase values.
type Context map[string]string

// Criteria is a compiled predicate over context terms. It is immutable
// after construction and safe to share between blocks and compiled views.
type Criteria struct {
	raw   []string
	terms []term
}

// term is one parsed pattern: the whole term passes when any alternative
// matches, inverted when negated.
type term struct {
	key     string
	negated bool
	alts    []alternative
}

type alternative struct {
	value   string
	matcher pathutil.Matcher // nil when the alternative is literal
}

// New compiles a set of terms into a Criteria. Terms are lowercased before
// parsing. An empty or nil term list yields a predicate that matches every
// context.
func New(terms []string) (*Criteria, error) {
	c := &Criteria{raw: make([]string, 0, len(terms)), terms: make([]term, 0, len(terms))}
	for _, raw := range terms {
		lowered := strings.ToLower(strings.TrimSpace(raw))
		if lowered == "" {
			return nil, fmt.Errorf("criteria: empty term")
		}
		t, err := parseTerm(lowered)
		if err != nil {
			return nil, err
		}
		c.raw = append(c.raw, lowered)
		c.terms = append(c.terms, t)
	}
	return c, nil
}

func parseTerm(s string) (term, error) {
	var t term
	rest := s
	if strings.HasPrefix(rest, "not ") {
		t.negated = true
		rest = strings.TrimSpace(rest[len("not "):])
	}
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		t.key = strings.TrimSpace(rest[:i])
		rest = strings.TrimSpace(rest[i+1:])
		if t.key == "" {
			return term{}, fmt.Errorf("criteria: missing key in term %q", s)
		}
	}
	for _, part := range strings.Split(rest, " or ") {
		part = strings.TrimSpace(part)
		if part == "" {
			return term{}, fmt.Errorf("criteria: empty alternative in term %q", s)
		}
		alt := alternative{value: part}
		if pathutil.HasWildcard(part) {
			m, err := pathutil.CompileWildcard(part)
			if err != nil {
				return term{}, fmt.Errorf("criteria: bad pattern %q: %w", part, err)
			}
			alt.matcher = m
		}
		t.alts = append(t.alts, alt)
	}
	return t, nil
}

// Matches evaluates the predicate against a context. Every term must pass.
// A keyed term whose key is absent from the context fails unless negated.
func (c *Criteria) Matches(ctx Context) bool {
	for _, t := range c.terms {
		if t.matches(ctx) == t.negated {
			return false
		}
	}
	return true
}

func (t term) matches(ctx Context) bool {
	if t.key != "" {
		value, ok := ctx[t.key]
		return ok && t.matchesValue(value)
	}
	for _, value := range ctx {
		if t.matchesValue(value) {
			return true
		}
	}
	return false
}

func (t term) matchesValue(value string) bool {
	for _, alt := range t.alts {
		if alt.matcher != nil {
			if alt.matcher.Match(value) {
				return true
			}
		} else if alt.value == value {
			return true
		}
	}
	return false
}

// Terms returns the lowercased source terms the predicate was built from.
func (c *Criteria) Terms() []string {
	out := make([]string, len(c.raw))
	copy(out, c.raw)
	return out
}

// ContextTerms derives a context from the predicate's own terms: each
// non-negated keyed term contributes its first alternative under its key,
// and each non-negated unkeyed term contributes its first alternative as
// both key and value, which the value-scanning match path satisfies. This
// is the self-referential default used when a fetch during construction
// supplies no explicit context; a predicate without negated terms always
// matches the context derived from itself.
func (c *Criteria) ContextTerms() Context {
	ctx := make(Context, len(c.terms))
	for _, t := range c.terms {
		if t.negated || len(t.alts) == 0 {
			continue
		}
		if t.key != "" {
			ctx[t.key] = t.alts[0].value
		} else {
			ctx[t.alts[0].value] = t.alts[0].value
		}
	}
	return ctx
}
