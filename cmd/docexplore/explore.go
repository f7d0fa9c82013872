package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docexplore/internal/aggregate"
	"docexplore/internal/service"
	"docexplore/internal/tui"
	"docexplore/internal/vectorstore/memory"
)

func newExploreCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [artifact]",
		Short: "Browse a topic artifact in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			l := g.logger()
			path := filepath.Join(cfg.Output.Dir, service.ArtifactFile)
			if len(args) == 1 {
				path = args[0]
			}
			a, err := aggregate.Read(path)
			if err != nil {
				return fmt.Errorf("read artifact: %w", err)
			}
			ins, err := service.LoadInsights(filepath.Join(filepath.Dir(path), service.InsightsFile))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err != nil {
				l.Warn("no insights next to artifact, analysis views will be empty", "artifact", path)
			}
			store, err := memory.FromArtifact(a)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(tui.New(a, ins, store), tea.WithAltScreen()).Run()
			return err
		},
	}
}
