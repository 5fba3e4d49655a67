package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/docvault/internal/doctree"
)

var (
	// dirStyle for nodes that have children
	dirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// leafStyle for documents and attachments without children
	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// imageStyle for image attachments
	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// headerBoxStyle for the page header in render output
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(0, 1)
)

// printTree writes t as an indented outline in display order.
func printTree(w io.Writer, t *doctree.Tree) {
	for n, depth := range t.WalkDepth(t.Root()) {
		if n.IsRoot() {
			fmt.Fprintln(w, dirStyle.Render("/"))
			continue
		}

		style := leafStyle
		switch {
		case n.IsDir():
			style = dirStyle
		case n.IsImage:
			style = imageStyle
		}

		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s %s\n", indent, style.Render(n.Title), dimStyle.Render(n.URI()))
	}
}

// printNode writes one resolved node.
func printNode(w io.Writer, n *doctree.Node) {
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Slug:"), n.Slug)
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Title:"), n.Title)
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("URI:"), n.URI())
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Kind:"), n.Kind)
	if src := n.Source(); src != "" {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Source:"), src)
	}
}
