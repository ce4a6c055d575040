package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncCmd pulls channel uploads into the episode table
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync episodes from the YouTube channel",
	Long: `Fetch every upload from the configured YouTube channel and upsert
it by video ID. New uploads are numbered after the highest existing
episode number, oldest first. Curated fields such as topics, show
notes and guest links are left alone.

Requires youtube.api_key and youtube.channel_id.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	deps, closeDB, err := openDependencies(appConfig)
	if err != nil {
		return err
	}
	defer closeDB()

	if !deps.Episodes.CanSync() {
		return fmt.Errorf("youtube sync is not configured: set youtube.api_key and youtube.channel_id")
	}

	result, err := deps.Episodes.SyncFromSource(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d videos: %d created, %d updated, %d unchanged\n",
		result.Fetched, result.Created, result.Updated, result.Unchanged)
	return nil
}
