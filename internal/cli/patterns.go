package cli

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"emoji-life/internal/render"
)

// PatternsOptions holds flags for the patterns command.
type PatternsOptions struct {
	File    string
	Preview bool
	Theme   string
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(root *RootOptions) *cobra.Command {
	opts := &PatternsOptions{}

	cmd := &cobra.Command{
		Use:   "patterns [name...]",
		Short: "List known patterns",
		Long: `List the built-in patterns plus any loaded from --file, with their size.
Naming patterns limits the listing; --preview draws each one.

Example:
  life patterns --preview glider pulsar
  life patterns --file ships.yaml --theme ascii --preview`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := root.Config.PatternFile
			if cmd.Flags().Changed("file") {
				file = opts.File
			}
			themeName := root.Config.Theme
			if cmd.Flags().Changed("theme") {
				themeName = opts.Theme
			}
			theme, ok := render.ThemeByName(themeName)
			if !ok {
				return eris.Errorf("unknown theme %q (have %v)", themeName, render.ThemeNames())
			}

			set, err := loadPatterns(file)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = set.Names()
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				p, ok := set.Lookup(name)
				if !ok {
					return eris.Errorf("unknown pattern %q", name)
				}
				w, h := p.Size()
				fmt.Fprintf(out, "%-12s %3dx%-3d %d cells\n", p.Name, w, h, len(p.Cells))
				if opts.Preview {
					if err := render.Preview(out, p, theme); err != nil {
						return err
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file with extra patterns")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "draw each pattern")
	cmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "glyph theme for previews")

	return cmd
}
