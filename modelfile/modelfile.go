// Package modelfile loads threat models from YAML files.
//
// The file format mirrors the entity model one-to-one: top-level name and
// description, then one list per entity kind, with cross-references by id.
//
//	name: E2E-VIV Threat Model
//	properties:
//	  - id: CONFIDENTIALITY
//	    description: It must not be possible to link a voter to their vote.
//	  - id: P1
//	    refines: CONFIDENTIALITY
//	    description: Cryptograms are unlinkable.
//	contexts:
//	  - id: IN
//	    name: Internet
//	    kind: network
//	mitigations:
//	  - id: M5
//	    name: Message signatures
//	    description: Messages on the network are digitally signed.
//	    scope: core
//	patterns:
//	  - id: network_tampering
//	    name: Network tampering
//	    description: An adversary alters protocol communications.
//	    mitigations:
//	      - mitigation: M5
//	        rationale: Signed messages cannot be forged in transit.
//	attacks:
//	  - id: ballot_tampering.network.IN
//	    name: Network tampering
//	    variant_of: network_tampering
//	    occurs_in: [IN]
//	    targets: [P1]
//
// Loading validates every entity; reference resolution and cycle checks
// happen later, at graph compile time.
package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/threatgraph/threat"
)

// Load reads a threat model from a YAML file.
func Load(path string) (*threat.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse parses a threat model from YAML bytes, applies defaults for
// unclassified enumerations, and validates every entity.
func Parse(data []byte) (*threat.Model, error) {
	var m threat.Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}

	applyDefaults(&m)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// applyDefaults fills the explicit "unspecified" enumeration variants for
// fields the author left empty.
func applyDefaults(m *threat.Model) {
	for _, c := range m.Contexts {
		if c.Kind == "" {
			c.Kind = threat.KindUnspecified
		}
	}
	for _, mit := range m.Mitigations {
		if mit.Scope == "" {
			mit.Scope = threat.ScopeUnspecified
		}
	}
}
