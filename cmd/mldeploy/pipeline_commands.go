package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-deploy-service/internal/classifier"
	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/services"
)

const (
	defaultModelName   = "im_classif_resnet"
	defaultScript      = "cmd/scorer/main.go"
	defaultEnvRef      = "environment.yml"
	defaultEnvOut      = "scoring-env.yml"
	defaultDescription = "Image classifier"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the pretrained classifier to disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			model := classifier.NewDemoModel()
			if err := classifier.Export(cfg.Scorer.ModelPath, model); err != nil {
				return err
			}
			fmt.Printf("Model %s exported to %s\n", model.Name, cfg.Scorer.ModelPath)
			return nil
		},
	}
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the exported model in the workspace registry",
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

			svc := services.NewRegistryService(ws, store)
			tags := map[string]string{"model": "image_classification", "framework": "linear"}
			model, rec, err := svc.Register(cmd.Context(), cfg.Scorer.ModelPath, name, tags, description)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s version %d (id %s), record %s\n",
				model.Name, model.Version, model.ID, rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", defaultModelName, "Registered model name")
	cmd.Flags().StringVar(&description, "description", defaultDescription, "Model description")
	return cmd
}

func newEnvCommand(ctx *commandContext) *cobra.Command {
	var reference, out string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Generate the constrained scoring environment file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.config(); err != nil {
				return err
			}
			env, err := services.NewEnvironmentService().Generate(reference, out)
			if err != nil {
				return err
			}
			fmt.Printf("Environment %s written to %s (%s)\n", env.Name, out, env.PythonPin())
			return nil
		},
	}

	cmd.Flags().StringVar(&reference, "reference", defaultEnvRef, "Reference environment file")
	cmd.Flags().StringVar(&out, "out", defaultEnvOut, "Output environment file")
	return cmd
}

func newImageCommand(ctx *commandContext) *cobra.Command {
	var name, script, envFile string

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Build the scoring container image (blocks until the build finishes)",
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
			rec, err := store.Latest(cmd.Context())
			if err != nil {
				return err
			}

			svc := services.NewImageService(ws, store)
			img, err := svc.Build(cmd.Context(), rec.ID, domain.ImageSpec{
				Name:            name,
				ExecutionScript: script,
				EnvironmentFile: envFile,
				Tags:            map[string]string{"model": "image_classification"},
				Description:     defaultDescription,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Image %s version %d built (id %s)\n", img.Name, img.Version, img.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "image-classif-scorer", "Image name")
	cmd.Flags().StringVar(&script, "script", defaultScript, "Scoring entrypoint baked into the image")
	cmd.Flags().StringVar(&envFile, "env", defaultEnvOut, "Environment file baked into the image")
	return cmd
}

func newDeployCommand(ctx *commandContext) *cobra.Command {
	var name string
	var cpuCores, memoryGB float64
	var monitoring bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision a container instance and deploy the scoring service",
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
			rec, err := store.Latest(cmd.Context())
			if err != nil {
				return err
			}

			svc := services.NewDeployService(ws, store)
			deployed, err := svc.Deploy(cmd.Context(), rec.ID, name, domain.DeployConfig{
				CPUCores:         cpuCores,
				MemoryGB:         memoryGB,
				EnableMonitoring: monitoring,
				Tags:             map[string]string{"model": "image_classification"},
				Description:      defaultDescription,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Service %s is %s\nScoring endpoint: %s\n",
				deployed.Name, deployed.State, deployed.ScoringURI)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Service name (derived from the model when empty)")
	cmd.Flags().Float64Var(&cpuCores, "cpu", 1, "CPU cores for the container instance")
	cmd.Flags().Float64Var(&memoryGB, "memory", 2, "Memory in GB for the container instance")
	cmd.Flags().BoolVar(&monitoring, "monitoring", true, "Enable endpoint monitoring")
	return cmd
}
