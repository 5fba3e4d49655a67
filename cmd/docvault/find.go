package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findMedia bool

var findCmd = &cobra.Command{
	Use:   "find <slug>",
	Short: "Resolve a full or partial slug",
	Long: `Resolve a slug the way wikilinks are resolved: an exact match wins,
otherwise the first page in display order whose slug ends with the given
segments. "index" segments are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildVault(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		n := v.Find(args[0])
		if findMedia {
			n = v.FindMedia(args[0])
		}
		if n == nil {
			return fmt.Errorf("no page matches %q", args[0])
		}
		printNode(cmd.OutOrStdout(), n)
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findMedia, "media", false, "Search the attachment tree")
	rootCmd.AddCommand(findCmd)
}
