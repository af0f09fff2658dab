package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

var policyFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "worker",
		Short:        "Offline genealogy tooling for dataset files",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&policyFlag, "policy", string(domain.PolicySkip),
		"dangling reference policy (skip|strict)")

	root.AddCommand(
		newTraceCmd(),
		newBOMCmd(),
		newExportCmd(),
		newAuditCmd(),
		newExecutionCmd(),
		newImportCmd(),
		newSyncCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
