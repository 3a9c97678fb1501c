package configset_test

import (
	"fmt"
	"log"

	"github.com/quarry-build/quarry/pkg/configset"
	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/field"
)

// Example demonstrates the write path (blocks, stores, removals) and the
// read path (merged and overridden fetches) of a config set.
func Example() {
	defines := &field.Field{Name: "defines", Kind: field.KindList}
	optimize := &field.Field{Name: "optimize", Kind: field.KindString,
		Allowed: []string{"Off", "On", "Speed"}}

	cs := configset.New(nil)

	// Unconditional settings.
	if _, err := cs.AddBlock(nil, ""); err != nil {
		log.Fatal(err)
	}
	_ = cs.Store(defines, []string{"BASE", "TRACE"})
	_ = cs.Store(optimize, "Off")

	// Debug-only settings, with one base define stripped.
	if _, err := cs.AddBlock([]string{"configurations:debug"}, ""); err != nil {
		log.Fatal(err)
	}
	_ = cs.Store(defines, []string{"DEBUG"})
	_ = cs.Remove(defines, "TRACE")

	debug := criteria.Context{"configurations": "debug"}
	release := criteria.Context{"configurations": "release"}

	debugDefines, _ := cs.Fetch(defines, debug)
	releaseDefines, _ := cs.Fetch(defines, release)
	debugOptimize, _ := cs.Fetch(optimize, debug)

	fmt.Println(debugDefines)
	fmt.Println(releaseDefines)
	fmt.Println(debugOptimize)
	// Output:
	// [BASE DEBUG]
	// [BASE TRACE]
	// Off
}

// ExampleConfigSet_Compile shows the fast path: pre-filtering a set
// against a fixed context, then querying without predicate evaluation.
func ExampleConfigSet_Compile() {
	files := &field.Field{Name: "files", Kind: field.KindPathList}

	cs := configset.New(nil)
	if _, err := cs.AddBlock(nil, ""); err != nil {
		log.Fatal(err)
	}
	_ = cs.Store(files, []string{"src/main.c", "src/util.c"})
	if _, err := cs.AddBlock([]string{"configurations:release"}, ""); err != nil {
		log.Fatal(err)
	}
	_ = cs.Store(files, []string{"src/release_stub.c"})

	compiled := cs.Compile(criteria.Context{"configurations": "release"})
	resolved, _ := compiled.Fetch(files, nil)

	fmt.Println(resolved)
	// Output:
	// [src/main.c src/util.c src/release_stub.c]
}
