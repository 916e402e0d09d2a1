package main

import (
	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-guidance/internal/config"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "guidance",
		Short:        "Stream, subject and college guidance for students",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newQuizCmd())
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

// loadConfig reads configuration and initialises logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return cfg, nil
}
