package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/killallgit/practitioners-pod/internal/directory"
	"github.com/spf13/cobra"
)

// episodesCmd lists the episode directory the way the website shows it
var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List episodes from the directory",
	Long: `List episodes with the same search, topic filter and sort
orders the website offers.

Example:
  podsite episodes
  podsite episodes --search leadership --sort oldest
  podsite episodes --topic Hiring
  podsite episodes --topics`,
	RunE: runEpisodes,
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	episodesCmd.Flags().String("search", "", "match title, description or guest name")
	episodesCmd.Flags().String("topic", directory.AllTopics, "only episodes with this topic")
	episodesCmd.Flags().String("sort", string(directory.SortNewest), "sort order (newest, oldest, episode_number_desc)")
	episodesCmd.Flags().Bool("topics", false, "list the available topics instead of episodes")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	topic, _ := cmd.Flags().GetString("topic")
	sortFlag, _ := cmd.Flags().GetString("sort")
	topicsOnly, _ := cmd.Flags().GetBool("topics")

	order, ok := directory.ParseSortOrder(sortFlag)
	if !ok {
		return fmt.Errorf("unknown sort order %q", sortFlag)
	}

	deps, closeDB, err := openDependencies(appConfig)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := deps.Episodes.Directory(cmd.Context(), directory.Query{
		SearchText:    search,
		SelectedTopic: topic,
		SortOrder:     order,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if topicsOnly {
		for _, t := range result.Topics {
			fmt.Fprintln(out, t)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Title", "Guest", "Published", "Duration", "Views", "Topics"})
	for _, ep := range result.Episodes {
		guest := ""
		if ep.Guest != nil {
			guest = ep.Guest.Name
		}
		t.AppendRow(table.Row{
			ep.EpisodeNumber,
			text.Trim(ep.Title, 48),
			guest,
			ep.PublishedAt.Format("2006-01-02"),
			ep.Duration,
			humanize.Comma(ep.ViewCount),
			strings.Join(ep.Topics, ", "),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d episodes", len(result.Episodes), result.Total)})
	t.Render()
	return nil
}
