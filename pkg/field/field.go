package field

import (
	"fmt"
	"strings"

	"github.com/quarry-build/quarry/pkg/pathutil"
)

// Kind classifies a field's value shape and with it the store, merge, and
// removal behavior the resolution engine delegates to.
type Kind string

const (
	// KindString holds a single free-form or enumerated string.
	KindString Kind = "string"

	// KindPath holds a single slash path, normalized on store.
	KindPath Kind = "path"

	// KindInteger holds a single integer.
	KindInteger Kind = "integer"

	// KindBoolean holds a single boolean.
	KindBoolean Kind = "boolean"

	// KindList holds an ordered list of strings that accumulates across
	// matching blocks.
	KindList Kind = "list"

	// KindPathList holds an ordered list of slash paths, normalized on
	// store, accumulating across matching blocks.
	KindPathList Kind = "pathlist"

	// KindKeyed holds a string-keyed map whose entries accumulate across
	// matching blocks, later blocks overwriting earlier keys.
	KindKeyed Kind = "keyed"
)

// Mergeable reports whether values of this kind accumulate across matching
// blocks instead of being overridden by the last match.
func (k Kind) Mergeable() bool {
	switch k {
	case KindList, KindPathList, KindKeyed:
		return true
	}
	return false
}

// Removable reports whether removal patterns apply to this kind. Only the
// ordered list kinds support removal; keyed fields accumulate but entries
// cannot be stripped (known limitation of the removal semantics).
func (k Kind) Removable() bool {
	return k == KindList || k == KindPathList
}

// Composite reports whether values of this kind are containers that must be
// deep-copied before being returned to callers.
func (k Kind) Composite() bool {
	return k.Mergeable()
}

func (k Kind) pathLike() bool {
	return k == KindPath || k == KindPathList
}

// Field describes one build-definition setting. Fields are immutable once
// registered and are referenced, never owned, by config sets.
type Field struct {
	// Name identifies the field; lowercase by convention.
	Name string `validate:"required,lowercase"`

	// Scope is the narrowest container the field belongs to.
	Scope string `validate:"omitempty,oneof=workspace project config"`

	// Kind selects the store/merge/remove behavior.
	Kind Kind `validate:"required,oneof=string path integer boolean list pathlist keyed"`

	// Allowed restricts values to an enumerated set when non-empty.
	// Comparison is case-insensitive; the canonical casing listed here is
	// what gets stored.
	Allowed []string
}

// Mergeable reports whether the field's effective value accumulates across
// matching blocks.
func (f *Field) Mergeable() bool {
	return f.Kind.Mergeable()
}

// Store validates value and folds it into old, returning the replacement
// for a block's storage. Validation happens before any part of old is
// touched, so a rejected store leaves the caller's prior value intact.
//
// Scalar kinds replace old; list kinds append to a copy of old so that
// repeated stores into the same block accumulate; keyed kinds overlay a
// copy of old.
func (f *Field) Store(old, value interface{}) (interface{}, error) {
	switch f.Kind {
	case KindString, KindPath:
		s, err := f.scalarString(value)
		if err != nil {
			return nil, err
		}
		return s, nil

	case KindInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != float64(int(v)) {
				return nil, NewValidationError(f.Name, value, "expected an integer, got %v", value)
			}
			return int(v), nil
		default:
			return nil, NewValidationError(f.Name, value, "expected an integer, got %T", value)
		}

	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, NewValidationError(f.Name, value, "expected a boolean, got %T", value)
		}
		return b, nil

	case KindList, KindPathList:
		items, err := f.stringList(value)
		if err != nil {
			return nil, err
		}
		prior, _ := old.([]string)
		return mergeList(prior, items), nil

	case KindKeyed:
		entries, err := f.keyedEntries(value)
		if err != nil {
			return nil, err
		}
		prior, _ := old.(map[string]string)
		return mergeKeyed(prior, entries), nil
	}
	return nil, NewValidationError(f.Name, value, "unsupported field kind %q", f.Kind)
}

// Merge folds a block's stored value into an accumulator owned by the
// caller. The accumulator may be mutated and must not alias block storage.
// For list kinds a value already present is moved to the end, so the most
// recent mention decides ordering (this matters for link-order lists).
func (f *Field) Merge(acc, value interface{}) interface{} {
	switch f.Kind {
	case KindList, KindPathList:
		prior, _ := acc.([]string)
		items, _ := value.([]string)
		return mergeList(prior, items)
	case KindKeyed:
		prior, _ := acc.(map[string]string)
		entries, _ := value.(map[string]string)
		if prior == nil {
			prior = make(map[string]string, len(entries))
		}
		for k, v := range entries {
			prior[k] = v
		}
		return prior
	}
	return value
}

// RemovePatterns flattens a removal request into the list of pattern
// strings to be lowercased and wildcard-compiled by the resolution engine.
func (f *Field) RemovePatterns(values interface{}) ([]string, error) {
	return f.stringList(values)
}

// Copy returns an independent copy of a stored value. Composite values are
// deep-copied so callers can never alias block storage; scalars are
// returned as-is.
func (f *Field) Copy(value interface{}) interface{} {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	}
	return value
}

// EmptyValue returns the empty accumulator for a mergeable field and nil
// for scalar fields.
func (f *Field) EmptyValue() interface{} {
	switch f.Kind {
	case KindList, KindPathList:
		return []string{}
	case KindKeyed:
		return map[string]string{}
	}
	return nil
}

func (f *Field) scalarString(value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", NewValidationError(f.Name, value, "expected a string, got %T", value)
	}
	if f.Kind.pathLike() {
		s = pathutil.Normalize(s)
	}
	if len(f.Allowed) > 0 {
		canonical, ok := f.allowedValue(s)
		if !ok {
			return "", NewValidationError(f.Name, value, "invalid value %q; allowed values are %s",
				s, strings.Join(f.Allowed, ", "))
		}
		s = canonical
	}
	return s, nil
}

// stringList flattens a value into a list of validated strings. Accepts a
// single string, []string, or a []interface{} nested to any depth (the
// shape script front-ends naturally produce).
func (f *Field) stringList(value interface{}) ([]string, error) {
	var out []string
	var flatten func(v interface{}) error
	flatten = func(v interface{}) error {
		switch item := v.(type) {
		case string:
			s, err := f.scalarString(item)
			if err != nil {
				return err
			}
			out = append(out, s)
		case []string:
			for _, s := range item {
				if err := flatten(s); err != nil {
					return err
				}
			}
		case []interface{}:
			for _, nested := range item {
				if err := flatten(nested); err != nil {
					return err
				}
			}
		default:
			return NewValidationError(f.Name, value, "expected a string or list of strings, got %T", v)
		}
		return nil
	}
	if err := flatten(value); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Field) keyedEntries(value interface{}) (map[string]string, error) {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, NewValidationError(f.Name, value, "expected string value for key %q, got %T", k, val)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, NewValidationError(f.Name, value, "expected a string map, got %T", value)
	}
}

func (f *Field) allowedValue(s string) (string, bool) {
	for _, a := range f.Allowed {
		if strings.EqualFold(a, s) {
			return a, true
		}
	}
	return "", false
}

// mergeList appends items to acc, moving an already present item to the
// end rather than duplicating it.
func mergeList(acc, items []string) []string {
	for _, item := range items {
		for i, existing := range acc {
			if existing == item {
				acc = append(acc[:i], acc[i+1:]...)
				break
			}
		}
		acc = append(acc, item)
	}
	return acc
}

func mergeKeyed(acc, entries map[string]string) map[string]string {
	if acc == nil {
		acc = make(map[string]string, len(entries))
	}
	for k, v := range entries {
		acc[k] = v
	}
	return acc
}

// String implements fmt.Stringer for log output.
func (f *Field) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, f.Kind)
}
