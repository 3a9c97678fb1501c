// Package script evaluates Starlark build-definition files into the api
// container model. The script drives the write path of the resolution
// engine: workspace() and project() open containers, filter() opens
// criteria-gated blocks, set() and remove() store values and removal
// patterns field by field.
//
// A minimal definition:
//
//	workspace("hello")
//	set("configurations", ["debug", "release"])
//
//	project("app")
//	set("kind", "ConsoleApp")
//	set("language", "C++")
//	set("files", ["src/**.cpp"])
//
//	filter("configurations:debug")
//	set("defines", ["DEBUG"])
//	set("symbols", "On")
//
//	filter()
//	set("optimize", "On")
//
// The resolution core itself performs no parsing and no I/O; this package
// is the boundary where script text becomes blocks.
package script
