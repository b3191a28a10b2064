package threat

import "fmt"

// Model is the aggregate root of a threat model: named collections of all
// entity kinds. A Model is assembled once by the author and then compiled
// into an immutable graph for querying; it is not mutated afterwards.
type Model struct {
	// Name is the name of this threat model.
	Name string `json:"name" yaml:"name"`

	// Description explains what this model covers.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Properties are the security objectives.
	Properties []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Contexts are the locations where attacks occur.
	Contexts []*Context `json:"contexts,omitempty" yaml:"contexts,omitempty"`

	// Mitigations are the countermeasures referenced by patterns and attacks.
	Mitigations []*Mitigation `json:"mitigations,omitempty" yaml:"mitigations,omitempty"`

	// Patterns are the reusable attack templates.
	Patterns []*AttackPattern `json:"patterns,omitempty" yaml:"patterns,omitempty"`

	// Attacks are the concrete attacks.
	Attacks []*Attack `json:"attacks,omitempty" yaml:"attacks,omitempty"`
}

// Validate checks the model name and validates every entity in the model.
// It does not resolve cross-references; that happens at graph compile time.
func (m *Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: model name is required", ErrInvalidEntity)
	}
	for _, p := range m.Properties {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, c := range m.Contexts {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, mit := range m.Mitigations {
		if err := mit.Validate(); err != nil {
			return err
		}
	}
	for _, p := range m.Patterns {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, a := range m.Attacks {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EntityCount returns the total number of entities across all collections.
func (m *Model) EntityCount() int {
	return len(m.Properties) + len(m.Contexts) + len(m.Mitigations) + len(m.Patterns) + len(m.Attacks)
}
