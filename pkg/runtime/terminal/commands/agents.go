package commands

import (
	"fmt"

	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

func NewAgentsCmd(service report.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the report section agents in section order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, info := range service.ListAgents() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-5.1f %-20s %s\n", info.Order, info.Name, info.Title)
			}
			return nil
		},
	}
}
