package threat

import "fmt"

// Property is a security objective the system should satisfy.
//
// Properties form a refinement forest with AND composition: for a property
// to be satisfied, every property that refines it must be satisfied. The
// Refines field names the parent property by id; the chain must be acyclic,
// which is enforced at graph compile time.
type Property struct {
	// ID is the unique property identifier (e.g., "C1.1", "P1.2").
	ID string `json:"id" yaml:"id"`

	// Description explains what this property means.
	Description string `json:"description" yaml:"description"`

	// Refines is the id of the parent property this one refines.
	// Empty for root properties.
	Refines string `json:"refines,omitempty" yaml:"refines,omitempty"`
}

// NewProperty creates a new root Property with the given id and description.
func NewProperty(id, description string) *Property {
	return &Property{
		ID:          id,
		Description: description,
	}
}

// WithRefines sets the parent property id and returns the property for
// method chaining.
func (p *Property) WithRefines(parentID string) *Property {
	p.Refines = parentID
	return p
}

// Validate checks that the property has all required fields set.
func (p *Property) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: property id is required", ErrInvalidEntity)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: property %q has no description", ErrInvalidEntity, p.ID)
	}
	if p.Refines == p.ID {
		return fmt.Errorf("%w: property %q refines itself", ErrInvalidEntity, p.ID)
	}
	return nil
}
