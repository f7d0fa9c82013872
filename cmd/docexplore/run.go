package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docexplore/internal/service"
)

func newRunCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input-dir>",
		Short: "Build the topic artifact from the documents in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			l := g.logger()
			res, err := service.NewPipeline(cfg, l).RunDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d topics written to %s\n",
				len(res.Artifact.Clusters), filepath.Join(res.OutputDir, service.ArtifactFile))
			return nil
		},
	}
}
