package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/tt-value/internal/database"
	"github.com/yourusername/tt-value/internal/repository"
	"github.com/yourusername/tt-value/internal/stats"
)

var importFiles bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the stats tables and optionally import the JSON datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
		appLog.Info("Stats schema ready")

		if !importFiles {
			return nil
		}

		snapshot, err := stats.NewFileSource(cfg.Stats.PlayersFile, cfg.Stats.HistoryFile, appLog).Load(ctx)
		if err != nil {
			return err
		}
		repos, err := repository.NewRepositories(db)
		if err != nil {
			return err
		}

		for i := range snapshot.Roster {
			if err := repos.Player.Upsert(ctx, &snapshot.Roster[i]); err != nil {
				return fmt.Errorf("failed to import player %d: %w", snapshot.Roster[i].ID, err)
			}
		}
		if err := repos.Match.InsertBatch(ctx, snapshot.Matches); err != nil {
			return fmt.Errorf("failed to import match history: %w", err)
		}

		appLog.WithFields(logrus.Fields{
			"players": len(snapshot.Roster),
			"matches": len(snapshot.Matches),
		}).Info("Stats imported")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&importFiles, "import", false, "Import stats.players_file and stats.history_file into the database")
}
