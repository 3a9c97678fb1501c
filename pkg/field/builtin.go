package field

// builtinFields are the build-definition settings every pipeline starts
// from. Scope records the narrowest container a field belongs to; the
// resolution engine itself does not interpret it, but front-ends use it to
// decide where a setting may appear.
var builtinFields = []Field{
	{Name: "kind", Scope: "project", Kind: KindString,
		Allowed: []string{"ConsoleApp", "WindowedApp", "StaticLib", "SharedLib", "Utility"}},
	{Name: "language", Scope: "project", Kind: KindString,
		Allowed: []string{"C", "C++", "C#"}},
	{Name: "configurations", Scope: "workspace", Kind: KindList},
	{Name: "platforms", Scope: "workspace", Kind: KindList},
	{Name: "location", Scope: "project", Kind: KindPath},
	{Name: "targetname", Scope: "config", Kind: KindString},
	{Name: "targetdir", Scope: "config", Kind: KindPath},
	{Name: "objdir", Scope: "config", Kind: KindPath},
	{Name: "optimize", Scope: "config", Kind: KindString,
		Allowed: []string{"Off", "On", "Debug", "Size", "Speed", "Full"}},
	{Name: "symbols", Scope: "config", Kind: KindString,
		Allowed: []string{"Off", "On", "Full"}},
	{Name: "warnings", Scope: "config", Kind: KindString,
		Allowed: []string{"Off", "Default", "Extra", "Everything"}},
	{Name: "defines", Scope: "config", Kind: KindList},
	{Name: "undefines", Scope: "config", Kind: KindList},
	{Name: "files", Scope: "config", Kind: KindPathList},
	{Name: "includedirs", Scope: "config", Kind: KindPathList},
	{Name: "libdirs", Scope: "config", Kind: KindPathList},
	{Name: "links", Scope: "config", Kind: KindList},
	{Name: "buildoptions", Scope: "config", Kind: KindList},
	{Name: "linkoptions", Scope: "config", Kind: KindList},
	{Name: "tags", Scope: "config", Kind: KindList},
	{Name: "environment", Scope: "config", Kind: KindKeyed},
}

// DefaultRegistry returns a registry pre-loaded with the builtin
// build-definition fields.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range builtinFields {
		if err := r.Register(f); err != nil {
			// Builtin definitions are covered by tests; a failure here is a
			// programming error, not a runtime condition.
			panic(err)
		}
	}
	return r
}
