package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"voice-renamer/internal/app/export"
)

var outputFilePath string

func init() {
	exportCmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "output file, .xlsx, .csv or .json")
	exportCmd.MarkFlagRequired("output")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the rename history to excel",
	Long: `Export the rename history to excel

- The format follows the extension of --output: .xlsx, .csv or .json
- --run and --limit select the rows as for "history"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := export.FormatFromPath(outputFilePath); err != nil {
			return err
		}

		records, err := load(cmd)
		if err != nil {
			return err
		}
		if err := export.ToFile(records, outputFilePath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d row(s) written to %v\n", len(records), outputFilePath)
		return nil
	},
}
