package history

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"voice-renamer/cmd/v2n/cmd/cli"
	"voice-renamer/internal/app"
	"voice-renamer/internal/app/model"
	"voice-renamer/internal/app/repository"
)

var runID string
var limit int

func init() {
	Cmd.PersistentFlags().StringVar(&runID, "run", "", "only show the renames of this run")
	Cmd.PersistentFlags().IntVarP(&limit, "limit", "n", 50, "number of most recent renames to show")

	Cmd.AddCommand(exportCmd)
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous renames",
	Long: `Show previous renames

- Newest first, limited by --limit
- --run shows a single run in processing order`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := load(cmd)
		if err != nil {
			return err
		}
		return Print(cmd.OutOrStdout(), records)
	},
}

func load(cmd *cobra.Command) ([]model.RenameRecord, error) {
	settings, err := cli.LoadSettings(cmd)
	if err != nil {
		return nil, err
	}
	dao, err := app.InitializeHistory(settings)
	if err != nil {
		return nil, err
	}
	defer dao.Close()

	return query(dao, runID, limit)
}

func query(dao repository.RenameDAO, runID string, limit int) ([]model.RenameRecord, error) {
	if runID != "" {
		return dao.GetByRun(runID)
	}
	return dao.GetRecent(limit)
}

// Print writes records as an aligned table
func Print(w io.Writer, records []model.RenameRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No renames recorded yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tSOURCE\tNEW NAME\tRUNG\tPROVIDER")
	for _, r := range records {
		name := r.OutputName
		if r.Failed() {
			name = "ERROR: " + firstLine(r.ErrorMessage)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			shortID(r.RunID),
			r.SourceName,
			name,
			r.Rung,
			r.Provider)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
