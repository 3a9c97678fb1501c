package criteria

import "testing"

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
	}{
		{"empty term", []string{""}},
		{"missing key", []string{":debug"}},
		{"empty alternative", []string{"configurations:debug or "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.terms); err == nil {
				t.Errorf("New(%v) succeeded, expected error", tt.terms)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		ctx   Context
		want  bool
	}{
		{
			name:  "empty criteria matches anything",
			terms: nil,
			ctx:   Context{"configurations": "debug"},
			want:  true,
		},
		{
			name:  "keyed term matches",
			terms: []string{"configurations:debug"},
			ctx:   Context{"configurations": "debug"},
			want:  true,
		},
		{
			name:  "keyed term mismatch",
			terms: []string{"configurations:debug"},
			ctx:   Context{"configurations": "release"},
			want:  false,
		},
		{
			name:  "keyed term absent key fails",
			terms: []string{"configurations:debug"},
			ctx:   Context{"system": "windows"},
			want:  false,
		},
		{
			name:  "terms are lowercased at construction",
			terms: []string{"Configurations:Debug"},
			ctx:   Context{"configurations": "debug"},
			want:  true,
		},
		{
			name:  "or alternatives",
			terms: []string{"system:windows or linux"},
			ctx:   Context{"system": "linux"},
			want:  true,
		},
		{
			name:  "or alternatives no match",
			terms: []string{"system:windows or linux"},
			ctx:   Context{"system": "macosx"},
			want:  false,
		},
		{
			name:  "negated term",
			terms: []string{"not system:windows"},
			ctx:   Context{"system": "linux"},
			want:  true,
		},
		{
			name:  "negated term rejects match",
			terms: []string{"not system:windows"},
			ctx:   Context{"system": "windows"},
			want:  false,
		},
		{
			name:  "negated term passes on absent key",
			terms: []string{"not system:windows"},
			ctx:   Context{"configurations": "debug"},
			want:  true,
		},
		{
			name:  "unkeyed term scans all values",
			terms: []string{"debug"},
			ctx:   Context{"configurations": "debug", "system": "linux"},
			want:  true,
		},
		{
			name:  "unkeyed term no value",
			terms: []string{"debug"},
			ctx:   Context{"configurations": "release"},
			want:  false,
		},
		{
			name:  "wildcard file term",
			terms: []string{"files:**.c"},
			ctx:   Context{"files": "src/sub/main.c"},
			want:  true,
		},
		{
			name:  "wildcard file term rejects header",
			terms: []string{"files:**.c"},
			ctx:   Context{"files": "src/main.h"},
			want:  false,
		},
		{
			name:  "all terms must pass",
			terms: []string{"configurations:debug", "system:windows"},
			ctx:   Context{"configurations": "debug", "system": "linux"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.terms)
			if err != nil {
				t.Fatalf("New(%v) failed: %v", tt.terms, err)
			}
			if got := c.Matches(tt.ctx); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.ctx, got, tt.want)
			}
		})
	}
}

func TestTerms_ReturnsCopy(t *testing.T) {
	c, err := New([]string{"Configurations:Debug"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	terms := c.Terms()
	if len(terms) != 1 || terms[0] != "configurations:debug" {
		t.Fatalf("Terms() = %v, want [configurations:debug]", terms)
	}

	terms[0] = "mutated"
	if got := c.Terms()[0]; got != "configurations:debug" {
		t.Errorf("Terms() aliased internal storage: got %q after mutation", got)
	}
}

func TestContextTerms(t *testing.T) {
	c, err := New([]string{
		"configurations:debug",
		"system:windows or linux",
		"not platforms:arm",
		"standalone",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := c.ContextTerms()
	want := Context{
		"configurations": "debug",
		"system":         "windows",
		// Unkeyed terms contribute themselves so the value-scanning match
		// path can satisfy them; negated terms contribute nothing.
		"standalone": "standalone",
	}
	if len(ctx) != len(want) {
		t.Fatalf("ContextTerms() = %v, want %v", ctx, want)
	}
	for k, v := range want {
		if ctx[k] != v {
			t.Errorf("ContextTerms()[%q] = %q, want %q", k, ctx[k], v)
		}
	}
}

func TestContextTerms_SelfMatch(t *testing.T) {
	// A criteria without negated terms must match the context derived from
	// itself, keyed and unkeyed terms alike; this is what makes the
	// self-referential default fetch context work during construction.
	tests := []struct {
		name  string
		terms []string
	}{
		{"keyed terms", []string{"configurations:debug", "files:src/a.c"}},
		{"unkeyed term", []string{"debug"}},
		{"mixed terms", []string{"configurations:debug", "standalone"}},
		{"or alternatives", []string{"system:windows or linux", "embedded or host"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.terms)
			if err != nil {
				t.Fatalf("New(%v) failed: %v", tt.terms, err)
			}
			if !c.Matches(c.ContextTerms()) {
				t.Errorf("criteria %v does not match its own derived context %v",
					tt.terms, c.ContextTerms())
			}
		})
	}
}
