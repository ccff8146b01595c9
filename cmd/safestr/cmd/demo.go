package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/safestr/internal/demo"
)

func newDemoCmd(a *app) *cobra.Command {
	var list bool

	demoCmd := &cobra.Command{
		Use:   "demo [section...]",
		Short: "Walk through the String operations",
		Long: `Runs the walkthrough sections in order, or only the named ones.

Sections: ` + strings.Join(demo.Names(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, s := range demo.Sections() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", s.Name, s.Title)
				}
				return nil
			}

			a.logger.Debug().Strs("sections", args).Msg("running demo")
			return demo.Run(cmd.OutOrStdout(), args, a.cfg.StringOptions()...)
		},
	}

	demoCmd.Flags().BoolVar(&list, "list", false, "list the sections and exit")
	return demoCmd
}
