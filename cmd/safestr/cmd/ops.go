package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/safestr/internal/script"
	"github.com/msto63/safestr/internal/tui"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operations available to scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := script.NewRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range registry.Names() {
				def, _ := registry.Lookup(name)
				fields := "-"
				if len(def.Fields) > 0 {
					fields = strings.Join(def.Fields, ",")
				}
				fmt.Fprintf(out, "%-20s %-22s %s\n", name, fields, tui.SubtitleStyle.Render(def.Description))
			}
			return nil
		},
	}
}
