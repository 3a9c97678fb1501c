package field

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Registry holds the field descriptors known to a resolution pipeline.
// Registries are plain values constructed and injected by callers; nothing
// in this module keeps global field state.
type Registry struct {
	fields   map[string]*Field
	validate *validator.Validate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields:   make(map[string]*Field),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register validates a field definition and adds it to the registry.
// Registering a name twice is an error; descriptors are immutable once
// registered.
func (r *Registry) Register(f Field) error {
	if err := r.validate.Struct(f); err != nil {
		return fmt.Errorf("invalid field definition %q: %w", f.Name, err)
	}
	if _, exists := r.fields[f.Name]; exists {
		return fmt.Errorf("field %q already registered", f.Name)
	}
	stored := f
	r.fields[f.Name] = &stored
	return nil
}

// Get looks up a field descriptor by name. The second result is false for
// unregistered names.
func (r *Registry) Get(name string) (*Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Names returns the registered field names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.fields)
}
