package threat

import "fmt"

// ContextKind categorizes the context where an attack can occur.
type ContextKind string

const (
	// KindSubsystem indicates a software subsystem (e.g., a ballot box server).
	KindSubsystem ContextKind = "subsystem"

	// KindNetwork indicates a network segment between subsystems.
	KindNetwork ContextKind = "network"

	// KindActor indicates a human or organizational actor.
	KindActor ContextKind = "actor"

	// KindPrimitive indicates a cryptographic or protocol primitive.
	KindPrimitive ContextKind = "primitive"

	// KindData indicates a data artifact (e.g., a stored ballot).
	KindData ContextKind = "data"

	// KindUnspecified is the explicit catch-all for contexts that do not fit
	// the known categories.
	KindUnspecified ContextKind = "unspecified"
)

// IsValid returns true if the context kind is a known value.
func (k ContextKind) IsValid() bool {
	switch k {
	case KindSubsystem, KindNetwork, KindActor, KindPrimitive, KindData, KindUnspecified:
		return true
	default:
		return false
	}
}

// String returns the string representation of the context kind.
func (k ContextKind) String() string {
	return string(k)
}

// ParseContextKind parses a string into a ContextKind value.
// Returns an error if the string is not a known kind.
func ParseContextKind(s string) (ContextKind, error) {
	kind := ContextKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid context kind: %s", s)
	}
	return kind, nil
}

// AllContextKinds returns all known context kind values.
func AllContextKinds() []ContextKind {
	return []ContextKind{KindSubsystem, KindNetwork, KindActor, KindPrimitive, KindData, KindUnspecified}
}
