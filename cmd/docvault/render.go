package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderMarkdown bool

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render a page to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildVault(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		n := v.Find(args[0])
		if n == nil {
			return fmt.Errorf("no page matches %q", args[0])
		}
		page, err := v.Render(n)
		if err != nil {
			return err
		}
		if page == nil {
			return fmt.Errorf("%q is a directory without an index page", n.Slug)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(cmd.ErrOrStderr(), headerBoxStyle.Render(fmt.Sprintf("%s\n%s", n.Title, dimStyle.Render(n.URI()))))
		if renderMarkdown {
			fmt.Fprint(out, page.Body)
			return nil
		}
		fmt.Fprint(out, page.HTML)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderMarkdown, "markdown", false, "Print the expanded markdown instead of HTML")
	rootCmd.AddCommand(renderCmd)
}
