package threat

import "fmt"

// Context is a location where an attack can occur: a subsystem, a network
// segment, an actor, a primitive, or a data artifact.
type Context struct {
	// ID is the short unique identifier (e.g., "BB", "EA", "IN").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name (e.g., "Ballot Box").
	Name string `json:"name" yaml:"name"`

	// Kind categorizes the context.
	Kind ContextKind `json:"kind" yaml:"kind"`

	// Description holds optional details about the context.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewContext creates a new Context with the given id, name, and kind.
func NewContext(id, name string, kind ContextKind) *Context {
	return &Context{
		ID:   id,
		Name: name,
		Kind: kind,
	}
}

// WithDescription sets the description and returns the context for method
// chaining.
func (c *Context) WithDescription(description string) *Context {
	c.Description = description
	return c
}

// Validate checks that the context has all required fields and a known kind.
func (c *Context) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: context id is required", ErrInvalidEntity)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: context %q has no name", ErrInvalidEntity, c.ID)
	}
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: context %q has invalid kind %q", ErrInvalidEntity, c.ID, string(c.Kind))
	}
	return nil
}
