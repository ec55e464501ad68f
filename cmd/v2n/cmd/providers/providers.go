package providers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"voice-renamer/cmd/v2n/cmd/cli"
	"voice-renamer/internal/app/api/provider"
)

// Cmd represents the providers command
var Cmd = &cobra.Command{
	Use:   "providers",
	Short: "List the speech providers v2n can use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cli.LoadSettings(cmd)
		if err != nil {
			return err
		}
		return Print(cmd.OutOrStdout(), provider.ListRegisteredProviders(), settings.Provider)
	},
}

// Print lists providers, marking the configured one with *
func Print(w io.Writer, infos []provider.ProviderInfo, selected string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tDESCRIPTION\tTYPE\tDEFAULT MODEL\tREQUIRES")
	for _, info := range infos {
		marker := ""
		if info.Name == selected {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, info.Name, info.DisplayName, info.Type, info.DefaultModel, requirements(info))
	}
	return tw.Flush()
}

func requirements(info provider.ProviderInfo) string {
	needs := lo.Compact([]string{
		lo.Ternary(info.RequiresBinary, "binary", ""),
		lo.Ternary(info.RequiresAPIKey, "API key", ""),
		lo.Ternary(info.RequiresInternet, "internet", ""),
	})
	if len(needs) == 0 {
		return "-"
	}
	return strings.Join(needs, ", ")
}
