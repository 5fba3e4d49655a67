package main

import (
	"github.com/spf13/cobra"
)

var treeMedia bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the page tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildVault(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		t := v.Docs()
		if treeMedia {
			t = v.Media()
		}
		printTree(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeMedia, "media", false, "Print the attachment tree instead of the document tree")
	rootCmd.AddCommand(treeCmd)
}
