package main

import (
	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
	"github.com/mind-engage/mindengage-guidance/internal/server"
	"github.com/mind-engage/mindengage-guidance/internal/tui"
)

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Take the guidance quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// keep log lines off the wizard's screen
			logging.Init(logging.Config{Level: "disabled"})

			cat, dbh, err := server.LoadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if dbh != nil {
				defer dbh.Close()
			}
			return tui.Run(recommend.NewEngine(cat), cfg.Recommend.DefaultMaxColleges)
		},
	}
}
