package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-deploy-service/internal/core/services"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List recorded deployments with live service state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := ctx.workspaceClient()
			if err != nil {
				return err
			}
			store, err := ctx.deploymentStore()
			if err != nil {
				return err
			}

			statuses, err := services.NewStatusService(ws, store).List(cmd.Context())
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Println("No deployments recorded.")
				return nil
			}

			for _, st := range statuses {
				rec := st.Record
				line := fmt.Sprintf("%s  %-12s  model=%s", rec.ID, rec.Stage, rec.ModelName)
				if rec.ServiceName != "" {
					line += fmt.Sprintf("  service=%s", rec.ServiceName)
				}
				if st.ServiceState != "" {
					line += fmt.Sprintf("  live=%s", st.ServiceState)
				}
				if st.ScoringURI != "" {
					line += fmt.Sprintf("  uri=%s", st.ScoringURI)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
