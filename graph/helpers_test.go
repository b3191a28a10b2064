package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/threatgraph/threat"
)

// testModel returns a small e-voting threat model exercising every
// relationship kind: property refinement, pattern refinement with inherited
// mitigations, attack composition, and out-of-scope coverage.
func testModel() *threat.Model {
	return &threat.Model{
		Name: "evoting-test",

		Properties: []*threat.Property{
			threat.NewProperty("CONFIDENTIALITY", "It must not be possible to learn how anyone voted."),
			threat.NewProperty("P1", "A voter cannot be linked to their vote.").
				WithRefines("CONFIDENTIALITY"),
			threat.NewProperty("CORRECTNESS", "The tally corresponds to cast ballots."),
			threat.NewProperty("C2.1", "Cryptograms are recorded as cast.").
				WithRefines("CORRECTNESS"),
		},

		Contexts: []*threat.Context{
			threat.NewContext("IN", "Internet", threat.KindNetwork),
			threat.NewContext("VA", "Voting application", threat.KindSubsystem),
			threat.NewContext("EA", "Election administrator", threat.KindActor),
		},

		Mitigations: []*threat.Mitigation{
			threat.NewMitigation("M2", "Recorded as cast verifiability", "Voters verify recorded ballots.", threat.ScopePartiallyCore),
			threat.NewMitigation("M5", "Message signatures", "Messages are digitally signed.", threat.ScopeCore),
			threat.NewMitigation("M6", "Network hygiene", "General network security practices.", threat.ScopeNonCore),
			threat.OutOfScope,
		},

		Patterns: []*threat.AttackPattern{
			threat.NewAttackPattern("compromised_network", "Compromised network", "Network behavior is altered.").
				WithMitigation("M6", "Hygiene reduces network compromise risk."),
			threat.NewAttackPattern("network_tampering", "Network tampering", "Adversary alters protocol traffic.").
				WithRefines("compromised_network").
				WithMitigation("M5", "Signed messages cannot be forged in transit."),
		},

		Attacks: []*threat.Attack{
			threat.NewAttack("ballot_tampering", "Ballot tampering"),
			threat.NewAttack("ballot_tampering.network.IN", "Network tampering").
				WithVariantOf("network_tampering").
				WithAchieves("ballot_tampering").
				WithOccursIn("IN").
				WithTargets("C2.1").
				WithMitigation("M2", "Tracker checks detect altered cryptograms."),
			threat.NewAttack("coercion.EA", "Administrator coercion").
				WithOccursIn("EA").
				WithTargets("P1").
				WithMitigation("OOS", "In-person coercion is outside the protocol."),
			threat.NewAttack("doxxing", "Voter doxxing").
				WithOccursIn("VA").
				WithTargets("P1"),
			threat.NewAttack("tamper.direct_m5", "Tampering with direct signature mitigation").
				WithVariantOf("network_tampering").
				WithMitigation("M5", "Direct application on this attack."),
		},
	}
}

// compileTestModel compiles the shared fixture, failing the test on error.
func compileTestModel(t *testing.T) *Graph {
	t.Helper()
	g, err := Compile(context.Background(), testModel())
	require.NoError(t, err)
	return g
}
