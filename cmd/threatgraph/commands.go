package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/threatgraph/graph"
	"github.com/zero-day-ai/threatgraph/modelfile"
	"github.com/zero-day-ai/threatgraph/views"
)

// app carries the flags shared by every subcommand.
type app struct {
	modelPath string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "threatgraph",
		Short: "Compile and query threat models",
		Long: `threatgraph compiles a YAML threat model into a directed graph and
answers queries over it: which attacks target a property, which mitigations
apply to an attack (including ones inherited from its pattern), and which
attacks have no mitigation coverage at all.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&a.modelPath, "model", "m", "threatmodel.yaml", "path to the threat model YAML file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newTreeCmd(a),
		newAttacksCmd(a),
		newOutstandingCmd(a),
		newMitigationsCmd(a),
		newTargetingCmd(a),
		newContextCmd(a),
		newCoverageCmd(a),
		newDotCmd(a),
	)
	return cmd
}

// compile loads the model file and compiles it into a graph.
func (a *app) compile(cmd *cobra.Command) (*graph.Graph, error) {
	m, err := modelfile.Load(a.modelPath)
	if err != nil {
		return nil, err
	}
	g, err := graph.Compile(cmd.Context(), m)
	if err != nil {
		return nil, err
	}
	slog.Debug("compiled threat model",
		"name", g.ModelName,
		"build_id", g.BuildID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	return g, nil
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the property refinement tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), views.PropertyTree(g))
			return nil
		},
	}
}

func newAttacksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attacks",
		Short: "Print the attack composition tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), views.AttackTree(g))
			return nil
		},
	}
}

func newOutstandingCmd(a *app) *cobra.Command {
	opts := graph.DefaultOutstandingOptions()
	ignoreNonCore := false

	cmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List attacks without mitigation coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			opts.CountNonCore = !ignoreNonCore
			attacks, err := g.OutstandingAttacks(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, id := range attacks {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreNonCore, "ignore-non-core", false, "treat non-core mitigations as no coverage")
	cmd.Flags().BoolVar(&opts.IncludeAchieved, "include-achieved", false, "include attacks that are achieved by child attacks")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "CEL expression over id, name, pattern, contexts, targets")
	return cmd
}

func newMitigationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mitigations <attack-id>",
		Short: "List the mitigations applied to an attack, inherited ones included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			mits, err := g.MitigationsFor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, am := range mits {
				marker := ""
				if am.Inherited {
					marker = " [inherited]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)%s\n    %s\n",
					am.Mitigation.ID, am.Mitigation.Name, am.Mitigation.Scope, marker, am.Rationale)
			}
			return nil
		},
	}
}

func newTargetingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targeting <property-id>",
		Short: "List attacks targeting a property, sub-properties included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			attacks, err := g.AttacksTargeting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, id := range attacks {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newContextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "context <context-id>",
		Short: "List attacks occurring in a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			attacks, err := g.AttacksInContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, id := range attacks {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newCoverageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "List every attack with its full mitigation set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			out, err := views.Coverage(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newDotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "Export the compiled graph in Graphviz DOT format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compile(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), views.DOT(g))
			return nil
		},
	}
}
