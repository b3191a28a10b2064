package threat

import "fmt"

// Scope indicates how fully a mitigation is provided by the core system
// under analysis, as opposed to operational or procedural measures around it.
type Scope string

const (
	// ScopeCore indicates the mitigation is fully provided by the core system.
	// Examples: message signatures, zero-knowledge proofs
	ScopeCore Scope = "core"

	// ScopePartiallyCore indicates the core provides part of the mitigation
	// and the rest depends on surrounding procedures.
	// Examples: cast-as-intended verifiability requiring voter participation
	ScopePartiallyCore Scope = "partially-core"

	// ScopeNonCore indicates the mitigation lies entirely outside the core
	// system. Attacks covered only by non-core mitigations are effectively
	// out of scope for the core.
	// Examples: TLS termination, general cybersecurity hygiene
	ScopeNonCore Scope = "non-core"

	// ScopeUnspecified is the explicit catch-all for mitigations whose scope
	// has not been classified yet.
	ScopeUnspecified Scope = "unspecified"
)

// IsValid returns true if the scope is a known value.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeCore, ScopePartiallyCore, ScopeNonCore, ScopeUnspecified:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// ParseScope parses a string into a Scope value.
// Returns an error if the string is not a known scope.
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if !scope.IsValid() {
		return "", fmt.Errorf("invalid mitigation scope: %s", s)
	}
	return scope, nil
}

// AllScopes returns all known scope values.
func AllScopes() []Scope {
	return []Scope{ScopeCore, ScopePartiallyCore, ScopeNonCore, ScopeUnspecified}
}
