package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"docexplore/internal/config"
	"docexplore/internal/logger"
)

const rootLongDesc = `docexplore groups the passages of a document set into named topics.

  docexplore run <input-dir>       Build the topic artifact
  docexplore explore [artifact]    Browse an artifact in the terminal
  docexplore watch <input-dir>     Rebuild whenever the inputs change

Tunables live in config.yaml and DOCEXPLORE_* environment variables.`

type globalOpts struct {
	configPath string
	verbose    bool
	jsonLogs   bool
}

func (g *globalOpts) logger() *log.Logger {
	return logger.New(logger.Options{Debug: g.verbose, JSON: g.jsonLogs})
}

func (g *globalOpts) config() (*config.AppConfig, error) {
	if g.configPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(g.configPath)
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}
	cmd := &cobra.Command{
		Use:           "docexplore",
		Short:         "Document topic explorer",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to YAML config (default ./config.yaml or ~/.config/docexplore/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&g.jsonLogs, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(newRunCmd(g), newExploreCmd(g), newWatchCmd(g))
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.New(logger.Options{}).Error("docexplore failed", "err", err)
		stop()
		os.Exit(1)
	}
}
