package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const healthTimeout = 5 * time.Second

func newHealthCmd(root *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the classification server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()
			health, err := a.client.Health(ctx)
			if err != nil {
				a.log.Warn("health probe failed", zap.Error(err))
				return fmt.Errorf("%s unreachable: %w", a.client.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: status=%s model_enabled=%t\n", a.client.Name(), health.Status, health.GeminiEnabled)
			if !health.OK() {
				return fmt.Errorf("unexpected status %q", health.Status)
			}
			return nil
		},
	}
}
