package api

import (
	"fmt"

	"github.com/quarry-build/quarry/pkg/configset"
	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/field"
)

// Class distinguishes the container levels of a build definition.
type Class string

const (
	// ClassWorkspace is the outermost container.
	ClassWorkspace Class = "workspace"

	// ClassProject is a buildable unit inside a workspace. Its config set
	// inherits from the workspace's, so workspace-level settings resolve
	// through the parent chain.
	ClassProject Class = "project"
)

// Container is a named scope of a build definition backed by a config set.
type Container struct {
	// Name identifies the container within its parent.
	Name string

	// Class is the container level.
	Class Class

	// Config is the container's config set. Projects inherit the owning
	// workspace's set as parent.
	Config *configset.ConfigSet

	registry   *field.Registry
	attributes map[string]interface{}
	projects   []*Container
}

// NewWorkspace creates a root workspace container resolving fields against
// the given registry.
func NewWorkspace(registry *field.Registry, name string) *Container {
	return &Container{
		Name:       name,
		Class:      ClassWorkspace,
		Config:     configset.New(nil),
		registry:   registry,
		attributes: make(map[string]interface{}),
	}
}

// NewProject creates a project inside a workspace. The project's config
// set inherits the workspace's, so workspace settings apply unless the
// project overrides them.
func (c *Container) NewProject(name string) (*Container, error) {
	if c.Class != ClassWorkspace {
		return nil, fmt.Errorf("cannot create project %q inside %s %q", name, c.Class, c.Name)
	}
	p := &Container{
		Name:       name,
		Class:      ClassProject,
		Config:     configset.New(c.Config),
		registry:   c.registry,
		attributes: make(map[string]interface{}),
	}
	c.projects = append(c.projects, p)
	return p, nil
}

// Projects returns a workspace's projects in creation order.
func (c *Container) Projects() []*Container {
	return c.projects
}

// Project finds a project by name; nil when absent.
func (c *Container) Project(name string) *Container {
	for _, p := range c.projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Set writes a value: registered field names route through the config
// set's store path (criteria-gated, validated), anything else becomes a
// plain attribute on the container.
func (c *Container) Set(key string, value interface{}) error {
	if f, ok := c.registry.Get(key); ok {
		return c.Config.Store(f, value)
	}
	c.attributes[key] = value
	return nil
}

// Get reads a value: registered field names resolve through the config
// set using the current block's context, anything else reads the plain
// attribute. The second result is false when neither exists.
func (c *Container) Get(key string) (interface{}, bool) {
	if f, ok := c.registry.Get(key); ok {
		return c.Config.Fetch(f, nil)
	}
	value, ok := c.attributes[key]
	return value, ok
}

// Remove records removal patterns for a registered field.
func (c *Container) Remove(key string, values interface{}) error {
	f, ok := c.registry.Get(key)
	if !ok {
		return fmt.Errorf("cannot remove values from unknown field %q", key)
	}
	return c.Config.Remove(f, values)
}

// Filter opens a new criteria-gated block on the container's config set.
func (c *Container) Filter(terms []string, baseDir string) error {
	_, err := c.Config.AddBlock(terms, baseDir)
	return err
}

// Fetch resolves a registered field against an explicit context.
func (c *Container) Fetch(name string, ctx criteria.Context) (interface{}, bool) {
	f, ok := c.registry.Get(name)
	if !ok {
		return nil, false
	}
	return c.Config.Fetch(f, ctx)
}

// Session is the result of evaluating a build definition: the workspaces
// it declared, in declaration order.
type Session struct {
	Registry   *field.Registry
	Workspaces []*Container
}

// NewSession creates an empty session over a field registry.
func NewSession(registry *field.Registry) *Session {
	return &Session{Registry: registry}
}

// AddWorkspace creates a workspace and records it in the session.
func (s *Session) AddWorkspace(name string) *Container {
	w := NewWorkspace(s.Registry, name)
	s.Workspaces = append(s.Workspaces, w)
	return w
}

// Workspace finds a workspace by name; nil when absent.
func (s *Session) Workspace(name string) *Container {
	for _, w := range s.Workspaces {
		if w.Name == name {
			return w
		}
	}
	return nil
}
