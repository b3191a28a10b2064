package threat

import "fmt"

// AttackPattern is an abstract, reusable attack template.
//
// Patterns define attacks in the abstract ("network tampering", "malware")
// together with the mitigations that address them. Concrete attacks declared
// as variants of a pattern inherit the pattern's mitigations, including
// those of any patterns it transitively refines.
type AttackPattern struct {
	// ID is the unique pattern identifier (e.g., "network_tampering").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name.
	Name string `json:"name" yaml:"name"`

	// Description explains what this attack pattern is.
	Description string `json:"description" yaml:"description"`

	// Refines is the id of a parent pattern this one specializes.
	// Empty for root patterns. The chain must be acyclic.
	Refines string `json:"refines,omitempty" yaml:"refines,omitempty"`

	// Mitigations are the applications inherited by every variant of this
	// pattern.
	Mitigations []MitigationApplication `json:"mitigations,omitempty" yaml:"mitigations,omitempty"`
}

// NewAttackPattern creates a new root AttackPattern with the given id, name,
// and description.
func NewAttackPattern(id, name, description string) *AttackPattern {
	return &AttackPattern{
		ID:          id,
		Name:        name,
		Description: description,
	}
}

// WithRefines sets the parent pattern id and returns the pattern for method
// chaining.
func (p *AttackPattern) WithRefines(parentID string) *AttackPattern {
	p.Refines = parentID
	return p
}

// WithMitigation appends a mitigation application and returns the pattern
// for method chaining.
func (p *AttackPattern) WithMitigation(mitigationID, rationale string) *AttackPattern {
	p.Mitigations = append(p.Mitigations, MitigationApplication{
		MitigationID: mitigationID,
		Rationale:    rationale,
	})
	return p
}

// Validate checks that the pattern has all required fields and well-formed
// mitigation applications.
func (p *AttackPattern) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: attack pattern id is required", ErrInvalidEntity)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: attack pattern %q has no name", ErrInvalidEntity, p.ID)
	}
	if p.Refines == p.ID {
		return fmt.Errorf("%w: attack pattern %q refines itself", ErrInvalidEntity, p.ID)
	}
	for i := range p.Mitigations {
		if err := p.Mitigations[i].Validate(); err != nil {
			return fmt.Errorf("attack pattern %q: %w", p.ID, err)
		}
	}
	return nil
}
