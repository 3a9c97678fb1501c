package script

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/quarry-build/quarry/pkg/api"
	"github.com/quarry-build/quarry/pkg/field"
)

// Evaluator executes Starlark build-definition files against a field
// registry.
type Evaluator struct {
	registry *field.Registry
	logger   zerolog.Logger
}

// NewEvaluator creates an evaluator over the given registry.
func NewEvaluator(registry *field.Registry, logger zerolog.Logger) *Evaluator {
	return &Evaluator{registry: registry, logger: logger}
}

// evalState tracks the script cursor: which container is receiving values
// and which base directory newly opened blocks record.
type evalState struct {
	session   *api.Session
	workspace *api.Container
	project   *api.Container
	baseDir   string
}

// target is the container the next set/remove/filter applies to.
func (st *evalState) target() (*api.Container, error) {
	if st.project != nil {
		return st.project, nil
	}
	if st.workspace != nil {
		return st.workspace, nil
	}
	return nil, fmt.Errorf("no workspace declared yet")
}

// EvalFile executes a definition file and returns the session it built.
// filename is used for positions and as the default base directory; src
// may be nil to read from disk, or a string/[]byte with the script text.
func (e *Evaluator) EvalFile(filename string, src interface{}) (*api.Session, error) {
	start := time.Now()

	st := &evalState{
		session: api.NewSession(e.registry),
		baseDir: strings.ToLower(path.Dir(strings.ReplaceAll(filename, "\\", "/"))),
	}

	thread := &starlark.Thread{
		Name: "quarry",
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.Info().Str("script", filename).Msg(msg)
		},
	}

	predeclared := starlark.StringDict{
		"workspace": starlark.NewBuiltin("workspace", st.builtinWorkspace),
		"project":   starlark.NewBuiltin("project", st.builtinProject),
		"filter":    starlark.NewBuiltin("filter", st.builtinFilter),
		"basedir":   starlark.NewBuiltin("basedir", st.builtinBasedir),
		"set":       starlark.NewBuiltin("set", st.builtinSet),
		"remove":    starlark.NewBuiltin("remove", st.builtinRemove),
	}

	if _, err := starlark.ExecFile(thread, filename, src, predeclared); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("script %s failed: %s", filename, evalErr.Backtrace())
		}
		return nil, fmt.Errorf("script %s failed: %w", filename, err)
	}

	e.logger.Debug().
		Str("script", filename).
		Int("workspaces", len(st.session.Workspaces)).
		Dur("elapsed", time.Since(start)).
		Msg("definition evaluated")

	return st.session, nil
}

func (st *evalState) builtinWorkspace(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	st.workspace = st.session.AddWorkspace(name)
	st.project = nil
	if err := st.workspace.Filter(nil, st.baseDir); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (st *evalState) builtinProject(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	if st.workspace == nil {
		return nil, fmt.Errorf("project %q declared before any workspace", name)
	}
	p, err := st.workspace.NewProject(name)
	if err != nil {
		return nil, err
	}
	st.project = p
	if err := p.Filter(nil, st.baseDir); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// filter(*terms) opens a criteria-gated block on the current container.
// filter() with no terms returns to unconditional scope.
func (st *evalState) builtinFilter(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	terms, err := stringArgs(fn.Name(), args)
	if err != nil {
		return nil, err
	}
	target, err := st.target()
	if err != nil {
		return nil, err
	}
	return starlark.None, target.Filter(terms, st.baseDir)
}

// basedir(path) changes the base directory recorded on subsequently opened
// blocks; it defaults to the script's own directory.
func (st *evalState) builtinBasedir(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dir string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "path", &dir); err != nil {
		return nil, err
	}
	st.baseDir = strings.ToLower(dir)
	return starlark.None, nil
}

func (st *evalState) builtinSet(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "field", &name, "value", &value); err != nil {
		return nil, err
	}
	target, err := st.target()
	if err != nil {
		return nil, err
	}
	goValue, err := fromStarlark(value)
	if err != nil {
		return nil, fmt.Errorf("set(%q): %w", name, err)
	}
	if err := target.Set(name, goValue); err != nil {
		if verr, ok := field.AsValidationError(err); ok {
			pos := thread.CallFrame(1).Pos
			return nil, fmt.Errorf("%s: %w", pos, verr)
		}
		return nil, err
	}
	return starlark.None, nil
}

func (st *evalState) builtinRemove(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: expected a field name and at least one value", fn.Name())
	}
	name, ok := args[0].(starlark.String)
	if !ok {
		return nil, fmt.Errorf("%s: field name must be a string, got %s", fn.Name(), args[0].Type())
	}
	values, err := stringArgs(fn.Name(), args[1:])
	if err != nil {
		return nil, err
	}
	target, err := st.target()
	if err != nil {
		return nil, err
	}
	return starlark.None, target.Remove(string(name), values)
}
