package threat

import "fmt"

// Attack is a concrete attack against the system.
//
// Attacks target properties, occur in contexts, and may be variants of an
// attack pattern, inheriting its mitigations. Attacks also compose with each
// other: Achieves names parent attacks that this attack realizes (OR
// composition: any child achieving the parent suffices), and Requires names
// prerequisite attacks (AND composition).
type Attack struct {
	// ID is the unique attack identifier (e.g., "ballot_tampering.network.IN").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name.
	Name string `json:"name" yaml:"name"`

	// Description explains what this attack does.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// VariantOf is the id of the attack pattern this attack instantiates.
	// Empty if the attack is not built from a pattern.
	VariantOf string `json:"variant_of,omitempty" yaml:"variant_of,omitempty"`

	// Achieves lists ids of parent attacks this attack realizes.
	Achieves []string `json:"achieves,omitempty" yaml:"achieves,omitempty"`

	// Requires lists ids of prerequisite attacks.
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`

	// OccursIn lists ids of contexts where this attack can occur.
	OccursIn []string `json:"occurs_in,omitempty" yaml:"occurs_in,omitempty"`

	// Targets lists ids of properties this attack threatens.
	Targets []string `json:"targets,omitempty" yaml:"targets,omitempty"`

	// Mitigations are applications attached directly to this attack, in
	// addition to any inherited from the pattern.
	Mitigations []MitigationApplication `json:"mitigations,omitempty" yaml:"mitigations,omitempty"`
}

// NewAttack creates a new Attack with the given id and name.
func NewAttack(id, name string) *Attack {
	return &Attack{
		ID:   id,
		Name: name,
	}
}

// WithDescription sets the description and returns the attack for method
// chaining.
func (a *Attack) WithDescription(description string) *Attack {
	a.Description = description
	return a
}

// WithVariantOf sets the pattern id and returns the attack for method
// chaining.
func (a *Attack) WithVariantOf(patternID string) *Attack {
	a.VariantOf = patternID
	return a
}

// WithAchieves appends parent attack ids and returns the attack for method
// chaining.
func (a *Attack) WithAchieves(attackIDs ...string) *Attack {
	a.Achieves = append(a.Achieves, attackIDs...)
	return a
}

// WithRequires appends prerequisite attack ids and returns the attack for
// method chaining.
func (a *Attack) WithRequires(attackIDs ...string) *Attack {
	a.Requires = append(a.Requires, attackIDs...)
	return a
}

// WithOccursIn appends context ids and returns the attack for method
// chaining.
func (a *Attack) WithOccursIn(contextIDs ...string) *Attack {
	a.OccursIn = append(a.OccursIn, contextIDs...)
	return a
}

// WithTargets appends property ids and returns the attack for method
// chaining.
func (a *Attack) WithTargets(propertyIDs ...string) *Attack {
	a.Targets = append(a.Targets, propertyIDs...)
	return a
}

// WithMitigation appends a direct mitigation application and returns the
// attack for method chaining.
func (a *Attack) WithMitigation(mitigationID, rationale string) *Attack {
	a.Mitigations = append(a.Mitigations, MitigationApplication{
		MitigationID: mitigationID,
		Rationale:    rationale,
	})
	return a
}

// Validate checks that the attack has all required fields and well-formed
// mitigation applications.
func (a *Attack) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: attack id is required", ErrInvalidEntity)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: attack %q has no name", ErrInvalidEntity, a.ID)
	}
	for _, parent := range a.Achieves {
		if parent == a.ID {
			return fmt.Errorf("%w: attack %q achieves itself", ErrInvalidEntity, a.ID)
		}
	}
	for _, prereq := range a.Requires {
		if prereq == a.ID {
			return fmt.Errorf("%w: attack %q requires itself", ErrInvalidEntity, a.ID)
		}
	}
	for i := range a.Mitigations {
		if err := a.Mitigations[i].Validate(); err != nil {
			return fmt.Errorf("attack %q: %w", a.ID, err)
		}
	}
	return nil
}
