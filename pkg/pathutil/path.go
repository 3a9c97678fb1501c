package pathutil

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests a candidate path against a compiled wildcard pattern.
// Candidates are expected to be lowercased, slash-separated paths.
type Matcher interface {
	Match(s string) bool
}

// Normalize converts a path to canonical slash form: backslashes become
// forward slashes, redundant "." and ".." segments are collapsed, and
// trailing slashes are dropped. The empty path normalizes to ".".
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(p)
}

// Relative computes the path of target relative to base. Both inputs are
// normalized first; segment comparison is case-insensitive because contexts
// carry lowercased terms while definitions may not. When the two paths share
// no leading segments the target is returned unchanged, matching the
// behavior expected by base-directory rewriting (an unrelated file should
// never appear to live under a block's base directory).
func Relative(base, target string) string {
	base = Normalize(base)
	target = Normalize(target)

	if base == "." || base == "/" {
		return strings.TrimPrefix(target, "/")
	}
	if strings.EqualFold(base, target) {
		return "."
	}

	baseSegs := splitSegments(base)
	targetSegs := splitSegments(target)

	common := 0
	for common < len(baseSegs) && common < len(targetSegs) {
		if !strings.EqualFold(baseSegs[common], targetSegs[common]) {
			break
		}
		common++
	}
	if common == 0 {
		return target
	}

	var b strings.Builder
	for i := common; i < len(baseSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	rel := strings.TrimSuffix(b.String(), "/")
	if rel == "" {
		return "."
	}
	return rel
}

// HasWildcard reports whether a pattern contains wildcard metacharacters
// and so needs compilation rather than literal comparison.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// CompileWildcard compiles a wildcard pattern into a Matcher. The pattern
// is lowercased first so that matching lowercased context paths is
// case-insensitive. "/" is the only separator: "*" stops at it, "**" does
// not.
func CompileWildcard(pattern string) (Matcher, error) {
	return glob.Compile(strings.ToLower(Normalize(pattern)), '/')
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
