package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docexplore/internal/service"
	"docexplore/internal/watcher"
)

func newWatchCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <input-dir>",
		Short: "Rebuild the artifact whenever documents in a directory change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			l := g.logger()
			p := service.NewPipeline(cfg, l)
			dir := args[0]
			rebuild := func(ctx context.Context) error {
				res, err := p.RunDir(ctx, dir)
				if err != nil {
					return err
				}
				l.Info("artifact rebuilt", "run", res.RunID, "topics", len(res.Artifact.Clusters))
				return nil
			}
			if err := rebuild(cmd.Context()); err != nil {
				l.Error("initial build failed", "err", err)
			}
			return watcher.New(p.Extensions(), watcher.DefaultDebounce, l).Run(cmd.Context(), dir, rebuild)
		},
	}
}
