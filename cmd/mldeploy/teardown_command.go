package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"model-deploy-service/internal/core/services"
)

func newTeardownCommand(ctx *commandContext) *cobra.Command {
	var recordID string

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Delete the deployed service, image, and registered model",
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

			svc := services.NewTeardownService(ws, store)
			if recordID == "" {
				if err := svc.TearDownLatest(cmd.Context()); err != nil {
					return err
				}
			} else {
				id, err := uuid.Parse(recordID)
				if err != nil {
					return fmt.Errorf("parse record id: %w", err)
				}
				if err := svc.TearDown(cmd.Context(), id); err != nil {
					return err
				}
			}
			fmt.Println("Teardown complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "Deployment record ID (latest when empty)")
	return cmd
}
