package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cib-project/cib/internal/cibproject"
	"github.com/cib-project/cib/internal/nexus"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List every service the project exports, after composition",
		RunE:  runDescribe,
	}
}

func runDescribe(cmd *cobra.Command, _ []string) error {
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

	for _, name := range n.SortedNames() {
		fmt.Println(name)
	}
	return nil
}
