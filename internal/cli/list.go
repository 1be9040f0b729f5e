package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/center"
	"github.com/matzehuels/supernova/pkg/sink"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// listCommand creates the list command showing the registries.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "list [centers|formats|colors]",
		Short:     "List center algorithms, output formats and named colors",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"centers", "formats", "colors"},
		RunE: func(cmd *cobra.Command, args []string) error {
			what := ""
			if len(args) == 1 {
				what = args[0]
			}
			if what == "" || what == "centers" {
				printCenters()
			}
			if what == "" || what == "formats" {
				printFormats()
			}
			if what == "" || what == "colors" {
				printColors()
			}
			return nil
		},
	}
}

func printCenters() {
	fmt.Println(StyleTitle.Render("Centers"))
	for _, name := range center.Names() {
		line := "  " + StyleHighlight.Render(name)
		if name == center.DefaultName {
			line += StyleDim.Render(" (default)")
		}
		fmt.Println(line)
	}
	printNewline()
}

func printFormats() {
	fmt.Println(StyleTitle.Render("Formats"))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Format", "Extension", "Output").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleDim.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	for _, f := range sink.Formats() {
		desc := f.Description
		if f.Name == sink.DefaultFormat {
			desc += " (default)"
		}
		t.Row(f.Name, "."+f.Extension, desc)
	}
	fmt.Println(t)
	printNewline()
}

func printColors() {
	fmt.Println(StyleTitle.Render("Colors"))
	def := style.DefaultStyle()
	for _, t := range trait.All {
		printSwatch(string(t), def.Color(t))
	}
	printDetail("named: %s", strings.Join(style.ColorNames(), ", "))
	printNewline()
}
