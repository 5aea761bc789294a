package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-deploy-service/internal/classifier"
	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/services"
)

// newRunCommand sequences the whole pipeline: export, register, environment,
// image build, deployment.
func newRunCommand(ctx *commandContext) *cobra.Command {
	var envRef string
	var cpuCores, memoryGB float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline from export to a live scoring endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			ws, err := ctx.workspaceClient()
			if err != nil {
				return err
			}
			store, err := ctx.deploymentStore()
			if err != nil {
				return err
			}

			// Fail early if the workspace is unreachable.
			wsInfo, err := ws.GetWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Workspace %s (%s)\n", wsInfo.Name, wsInfo.Region)

			model := classifier.NewDemoModel()
			if err := classifier.Export(cfg.Scorer.ModelPath, model); err != nil {
				return err
			}
			fmt.Printf("Model exported to %s\n", cfg.Scorer.ModelPath)

			registrySvc := services.NewRegistryService(ws, store)
			tags := map[string]string{"model": "image_classification", "framework": "linear"}
			registered, rec, err := registrySvc.Register(cmd.Context(), cfg.Scorer.ModelPath,
				defaultModelName, tags, defaultDescription)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s version %d\n", registered.Name, registered.Version)

			if _, err := services.NewEnvironmentService().Generate(envRef, defaultEnvOut); err != nil {
				return err
			}
			fmt.Printf("Environment written to %s\n", defaultEnvOut)

			imageSvc := services.NewImageService(ws, store)
			img, err := imageSvc.Build(cmd.Context(), rec.ID, domain.ImageSpec{
				Name:            "image-classif-scorer",
				ExecutionScript: defaultScript,
				EnvironmentFile: defaultEnvOut,
				Tags:            tags,
				Description:     defaultDescription,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Image %s built\n", img.Name)

			deploySvc := services.NewDeployService(ws, store)
			svc, err := deploySvc.Deploy(cmd.Context(), rec.ID, "", domain.DeployConfig{
				CPUCores:         cpuCores,
				MemoryGB:         memoryGB,
				EnableMonitoring: true,
				Tags:             tags,
				Description:      defaultDescription,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Service %s is %s\nScoring endpoint: %s\n", svc.Name, svc.State, svc.ScoringURI)
			return nil
		},
	}

	cmd.Flags().StringVar(&envRef, "reference", defaultEnvRef, "Reference environment file")
	cmd.Flags().Float64Var(&cpuCores, "cpu", 1, "CPU cores for the container instance")
	cmd.Flags().Float64Var(&memoryGB, "memory", 2, "Memory in GB for the container instance")
	return cmd
}
