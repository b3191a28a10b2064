package threat

import "fmt"

// Mitigation is a countermeasure that prevents or reduces the impact of
// attacks. Mitigations are attached to attacks and attack patterns through
// MitigationApplication records.
type Mitigation struct {
	// ID is the unique mitigation identifier (e.g., "M5").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name (e.g., "Message signatures").
	Name string `json:"name" yaml:"name"`

	// Description explains what this mitigation does.
	Description string `json:"description" yaml:"description"`

	// Scope indicates how fully the core system provides this mitigation.
	Scope Scope `json:"scope" yaml:"scope"`
}

// NewMitigation creates a new Mitigation with the given id, name,
// description, and scope.
func NewMitigation(id, name, description string, scope Scope) *Mitigation {
	return &Mitigation{
		ID:          id,
		Name:        name,
		Description: description,
		Scope:       scope,
	}
}

// Validate checks that the mitigation has all required fields and a known
// scope.
func (m *Mitigation) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: mitigation id is required", ErrInvalidEntity)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: mitigation %q has no name", ErrInvalidEntity, m.ID)
	}
	if !m.Scope.IsValid() {
		return fmt.Errorf("%w: mitigation %q has invalid scope %q", ErrInvalidEntity, m.ID, string(m.Scope))
	}
	return nil
}

// MitigationApplication attaches a mitigation to an attack or pattern
// together with a rationale explaining how the mitigation helps against that
// specific attack.
type MitigationApplication struct {
	// MitigationID is the id of the applied mitigation.
	MitigationID string `json:"mitigation" yaml:"mitigation"`

	// Rationale explains how this mitigation helps.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// Validate checks that the application names a mitigation.
func (ma *MitigationApplication) Validate() error {
	if ma.MitigationID == "" {
		return fmt.Errorf("%w: mitigation application has no mitigation id", ErrInvalidEntity)
	}
	return nil
}

// OutOfScope is the conventional mitigation applied to attacks that cannot
// be mitigated within the system scope at all. Include it in a model's
// Mitigations collection to use it.
var OutOfScope = &Mitigation{
	ID:          "OOS",
	Name:        "Out of scope",
	Description: "This attack cannot be mitigated within the system scope.",
	Scope:       ScopeNonCore,
}
