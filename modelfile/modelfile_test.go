package modelfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/threatgraph/graph"
	"github.com/zero-day-ai/threatgraph/threat"
)

const sampleModel = `
name: sample election model
description: Minimal model for loader tests.

properties:
  - id: CONFIDENTIALITY
    description: It must not be possible to link a voter to their vote.
  - id: P1
    refines: CONFIDENTIALITY
    description: Cryptograms are unlinkable.

contexts:
  - id: IN
    name: Internet
    kind: network
  - id: DBS
    name: Database server

mitigations:
  - id: M5
    name: Message signatures
    description: Messages on the network are digitally signed.
    scope: core
  - id: M9
    name: Audit logging
    description: Server actions are logged.

patterns:
  - id: network_tampering
    name: Network tampering
    description: An adversary alters protocol communications.
    mitigations:
      - mitigation: M5
        rationale: Signed messages cannot be forged in transit.

attacks:
  - id: ballot_tampering.network.IN
    name: Network tampering
    variant_of: network_tampering
    occurs_in: [IN]
    targets: [P1]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleModel))
	require.NoError(t, err)

	assert.Equal(t, "sample election model", m.Name)
	require.Len(t, m.Properties, 2)
	assert.Equal(t, "CONFIDENTIALITY", m.Properties[1].Refines)

	require.Len(t, m.Contexts, 2)
	assert.Equal(t, threat.KindNetwork, m.Contexts[0].Kind)

	require.Len(t, m.Patterns, 1)
	require.Len(t, m.Patterns[0].Mitigations, 1)
	assert.Equal(t, "M5", m.Patterns[0].Mitigations[0].MitigationID)

	require.Len(t, m.Attacks, 1)
	assert.Equal(t, []string{"IN"}, m.Attacks[0].OccursIn)
}

func TestParse_AppliesDefaults(t *testing.T) {
	m, err := Parse([]byte(sampleModel))
	require.NoError(t, err)

	// DBS omitted kind, M9 omitted scope.
	assert.Equal(t, threat.KindUnspecified, m.Contexts[1].Kind)
	assert.Equal(t, threat.ScopeUnspecified, m.Mitigations[1].Scope)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("attacks: {not: [a, list"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestParse_InvalidEntity(t *testing.T) {
	_, err := Parse([]byte(`
name: broken model
contexts:
  - id: BB
    name: Ballot Box
    kind: vault
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, threat.ErrInvalidEntity)
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse([]byte("description: nameless"))
	assert.ErrorIs(t, err, threat.ErrInvalidEntity)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample election model", m.Name)

	// A loaded model compiles directly.
	g, err := graph.Compile(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 8, g.NodeCount())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read model file")
}
