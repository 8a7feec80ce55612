package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 80
const minWidth = 40

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		// Wrap long lines
		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// SetWrappedHelp rewrites a command's Long description so help output
// fits the terminal.
func SetWrappedHelp(cmd *cobra.Command) {
	width := getTerminalWidth()

	var apply func(c *cobra.Command)
	apply = func(c *cobra.Command) {
		if c.Long != "" {
			c.Long = wrapText(c.Long, width)
		}
		c.LocalFlags().VisitAll(func(f *pflag.Flag) {
			// flag usages render indented under the flag column
			f.Usage = wrapText(f.Usage, width-16)
		})
		for _, sub := range c.Commands() {
			apply(sub)
		}
	}

	cobra.OnInitialize(func() {
		apply(cmd)
	})
}
