package threat

import "errors"

// Sentinel errors for entity validation.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidEntity indicates that an entity is missing a required field
	// or carries an invalid enumeration value. It is returned by the Validate
	// methods on entities and on Model, wrapped with detail about the
	// offending entity and field.
	//
	// Example:
	//	if err := model.Validate(); errors.Is(err, threat.ErrInvalidEntity) {
	//	    log.Error("model failed validation", "error", err)
	//	}
	ErrInvalidEntity = errors.New("invalid entity")
)
