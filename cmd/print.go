package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
