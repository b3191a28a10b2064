package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zero-day-ai/threatgraph/threat"
)

func TestCompile_NodesAndEdges(t *testing.T) {
	g := compileTestModel(t)

	assert.Equal(t, 18, g.NodeCount())
	assert.Equal(t, 20, g.EdgeCount())

	n, err := g.Node("network_tampering")
	require.NoError(t, err)
	assert.Equal(t, NodePattern, n.Kind)
	assert.Equal(t, "Network tampering", n.Name)

	n, err = g.Node("CONFIDENTIALITY")
	require.NoError(t, err)
	assert.Equal(t, NodeProperty, n.Kind)

	out, err := g.Out("ballot_tampering.network.IN")
	require.NoError(t, err)

	kinds := make(map[EdgeKind]int)
	for _, e := range out {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[EdgeVariantOf])
	assert.Equal(t, 1, kinds[EdgeAchieves])
	assert.Equal(t, 1, kinds[EdgeOccursIn])
	assert.Equal(t, 1, kinds[EdgeTargets])
	assert.Equal(t, 3, kinds[EdgeMitigatedBy], "direct M2 plus inherited M5 and M6")
}

func TestCompile_MaterializesInheritedMitigations(t *testing.T) {
	g := compileTestModel(t)

	out, err := g.Out("ballot_tampering.network.IN")
	require.NoError(t, err)

	byMitigation := make(map[string]Edge)
	for _, e := range out {
		if e.Kind == EdgeMitigatedBy {
			byMitigation[e.To] = e
		}
	}

	require.Contains(t, byMitigation, "M2")
	assert.False(t, byMitigation["M2"].Inherited)
	assert.Equal(t, "Tracker checks detect altered cryptograms.", byMitigation["M2"].Rationale)

	// Inherited from the pattern and from the pattern's own refines parent.
	require.Contains(t, byMitigation, "M5")
	assert.True(t, byMitigation["M5"].Inherited)
	require.Contains(t, byMitigation, "M6")
	assert.True(t, byMitigation["M6"].Inherited)
}

func TestCompile_DirectRationaleWins(t *testing.T) {
	g := compileTestModel(t)

	out, err := g.Out("tamper.direct_m5")
	require.NoError(t, err)

	var m5 []Edge
	for _, e := range out {
		if e.Kind == EdgeMitigatedBy && e.To == "M5" {
			m5 = append(m5, e)
		}
	}

	require.Len(t, m5, 1, "direct and inherited M5 must collapse to one edge")
	assert.False(t, m5[0].Inherited)
	assert.Equal(t, "Direct application on this attack.", m5[0].Rationale)
}

func TestCompile_Deterministic(t *testing.T) {
	g1, err := Compile(context.Background(), testModel())
	require.NoError(t, err)
	g2, err := Compile(context.Background(), testModel())
	require.NoError(t, err)

	assert.Equal(t, g1.Nodes(), g2.Nodes())
	assert.Equal(t, g1.Edges(), g2.Edges())
	assert.NotEqual(t, g1.BuildID, g2.BuildID, "each build gets its own provenance id")
}

func TestCompile_DuplicateID(t *testing.T) {
	m := testModel()
	m.Contexts = append(m.Contexts, threat.NewContext("M5", "Colliding context", threat.KindSubsystem))

	_, err := Compile(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), "M5")
}

func TestCompile_UnresolvedReference(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*threat.Model)
		want   string
	}{
		{
			"property refines unknown property",
			func(m *threat.Model) { m.Properties[1].Refines = "GHOST" },
			"GHOST",
		},
		{
			"pattern applies unknown mitigation",
			func(m *threat.Model) { m.Patterns[0].Mitigations[0].MitigationID = "M99" },
			"M99",
		},
		{
			"attack variant of unknown pattern",
			func(m *threat.Model) { m.Attacks[1].VariantOf = "no_such_pattern" },
			"no_such_pattern",
		},
		{
			"attack occurs in unknown context",
			func(m *threat.Model) { m.Attacks[1].OccursIn = []string{"XX"} },
			"XX",
		},
		{
			"attack targets unknown property",
			func(m *threat.Model) { m.Attacks[1].Targets = []string{"NOPE"} },
			"NOPE",
		},
		{
			"attack achieves unknown attack",
			func(m *threat.Model) { m.Attacks[1].Achieves = []string{"phantom"} },
			"phantom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			tt.mutate(m)

			_, err := Compile(context.Background(), m)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnresolvedReference)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompile_CycleDetection(t *testing.T) {
	t.Run("property refines cycle", func(t *testing.T) {
		m := testModel()
		m.Properties[0].Refines = "P1" // P1 already refines CONFIDENTIALITY

		_, err := Compile(context.Background(), m)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCycle)
		assert.Contains(t, err.Error(), "refines")
		assert.Contains(t, err.Error(), "->")
	})

	t.Run("pattern refines cycle", func(t *testing.T) {
		m := testModel()
		m.Patterns[0].Refines = "network_tampering"

		_, err := Compile(context.Background(), m)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("achieves cycle", func(t *testing.T) {
		m := testModel()
		m.Attacks[0].Achieves = []string{"ballot_tampering.network.IN"}

		_, err := Compile(context.Background(), m)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCycle)
		assert.Contains(t, err.Error(), "achieves")
	})
}

func TestCompile_InvalidModel(t *testing.T) {
	m := testModel()
	m.Attacks[0].Name = ""

	_, err := Compile(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, threat.ErrInvalidEntity)
}

func TestCompile_EmitsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, err := Compile(context.Background(), testModel(), WithTracerProvider(tp))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "graph.Compile", spans[0].Name())
}
