package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// statsCmd prints the admin dashboard figures
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show site statistics",
	Long: `Show the figures from the admin dashboard: episodes, guests,
total views, applications, new contact messages and active newsletter
subscribers, followed by the most recent guest applications.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	deps, closeDB, err := openDependencies(appConfig)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := cmd.Context()
	dashboard := deps.Admin.Dashboard(ctx)
	var views int64
	if s, err := deps.Episodes.Stats(ctx); err == nil {
		views = s.TotalViews
	}

	out := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Figure", "Value"})
	t.AppendRows([]table.Row{
		{"Episodes", humanize.Comma(dashboard.Episodes)},
		{"Guests", humanize.Comma(dashboard.Guests)},
		{"Total views", humanize.Comma(views)},
		{"Applications", humanize.Comma(dashboard.Applications)},
		{"New messages", humanize.Comma(dashboard.NewMessages)},
		{"Subscribers", humanize.Comma(dashboard.Subscribers)},
	})
	t.Render()

	if len(dashboard.RecentApplications) == 0 {
		return nil
	}

	recent := table.NewWriter()
	recent.SetOutputMirror(out)
	recent.SetStyle(table.StyleLight)
	recent.SetTitle("Recent applications")
	recent.AppendHeader(table.Row{"Name", "Company", "Status", "Received"})
	for _, app := range dashboard.RecentApplications {
		recent.AppendRow(table.Row{app.Name, app.Company, app.Status, humanize.Time(app.CreatedAt)})
	}
	recent.Render()
	return nil
}
