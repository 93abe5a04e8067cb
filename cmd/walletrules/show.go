package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Print the rules of a governance wallet",
		Example: binaryName + " show --realm <address> --governance <address>",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			editor, _, err := a.load(cmd)
			if err != nil {
				return err
			}

			printRules(cmd.OutOrStdout(), editor)
			return nil
		},
	}
}
