package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cib-project/cib/internal/cibproject"
	"github.com/cib-project/cib/internal/flow"
	"github.com/cib-project/cib/internal/flow/flowviz"
	"github.com/cib-project/cib/internal/nexus"
)

var (
	graphService string
	graphFormat  string
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render a routine's flow graph as Graphviz DOT or Mermaid",
		RunE:  runGraph,
	}
	cmd.Flags().StringVar(&graphService, "service", "morning", "which routine to render: morning or evening")
	cmd.Flags().StringVar(&graphFormat, "format", "dot", "output format: dot or mermaid")
	return cmd
}

func runGraph(cmd *cobra.Command, _ []string) error {
	args, err := cibproject.Load(configFlag)
	if err != nil {
		return fmt.Errorf("loading project args: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tree := cibproject.Config(args, logger)
	n, err := nexus.Build(tree, args.ToNexusArgs())
	if err != nil {
		return err
	}

	var g *flow.Graph
	switch graphService {
	case "morning":
		svc, ok := nexus.Service[cibproject.MorningRoutine](n)
		if !ok {
			return fmt.Errorf("morning routine was not exported")
		}
		g = svc.Graph
	case "evening":
		svc, ok := nexus.Service[cibproject.EveningRoutine](n)
		if !ok {
			return fmt.Errorf("evening routine was not exported")
		}
		g = svc.Graph
	default:
		return fmt.Errorf("unknown --service %q (want morning or evening)", graphService)
	}

	switch graphFormat {
	case "dot":
		fmt.Println(flowviz.DOT(g, graphService))
	case "mermaid":
		fmt.Println(flowviz.Mermaid(g))
	default:
		return fmt.Errorf("unknown --format %q (want dot or mermaid)", graphFormat)
	}
	return nil
}
