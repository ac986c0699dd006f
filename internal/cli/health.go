package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health and the number of live games",
		Long: `Check server health and the number of live games.

With --wait the command retries until the server answers or the wait runs out,
which is handy right after starting a server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := checkHealth(cmd.Context(), wait)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying for up to this long")

	return cmd
}

const healthRetryInterval = 200 * time.Millisecond

func checkHealth(ctx context.Context, wait time.Duration) (HealthResult, error) {
	var result HealthResult
	if wait <= 0 {
		err := client.Get(ctx, "/api/v1/health", &result)
		return result, err
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	for {
		err := client.Get(ctx, "/api/v1/health", &result)
		if err == nil {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return HealthResult{}, fmt.Errorf("server not healthy after %s: %w", wait, err)
		case <-time.After(healthRetryInterval):
		}
	}
}
