package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"model-deploy-service/internal/core/domain"
)

// newScoreCommand smoke-tests a deployed endpoint with local image files.
func newScoreCommand(ctx *commandContext) *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "score <image>...",
		Short: "Send local images to the deployed scoring endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if uri == "" {
				store, err := ctx.deploymentStore()
				if err != nil {
					return err
				}
				rec, err := store.Latest(cmd.Context())
				if err != nil {
					return err
				}
				if rec.ScoringURI == "" {
					return domain.ErrServiceNotFound
				}
				uri = rec.ScoringURI
			}

			payload := make([]string, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, path)
					}
					return fmt.Errorf("read image %s: %w", path, err)
				}
				payload = append(payload, base64.StdEncoding.EncodeToString(data))
			}

			body, err := json.Marshal(map[string][]string{"data": payload})
			if err != nil {
				return fmt.Errorf("encode scoring request: %w", err)
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, uri, bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("create scoring request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("call scoring endpoint: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				return fmt.Errorf("scoring endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
			}

			var results []domain.ScoreResult
			if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
				return fmt.Errorf("decode scoring response: %w", err)
			}
			for i, r := range results {
				if r.Failed() {
					fmt.Printf("%s: error: %s\n", args[i], r.Label)
				} else {
					fmt.Printf("%s: %s (%s)\n", args[i], r.Label, r.Probability)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "Scoring URI (latest deployment when empty)")
	return cmd
}
