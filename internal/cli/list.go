package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			themes, err := app.Themes.List()
			if err != nil {
				return err
			}
			st, err := app.State.Load()
			if err != nil {
				return err
			}

			s := app.Styles
			for _, t := range themes {
				marker := " "
				if t.ID == st.CurrentTheme {
					marker = s.Success.Render("*")
				}
				variant := "dark"
				if t.IsLight {
					variant = "light"
				}
				origin := "bundled"
				if t.IsCustom {
					origin = "custom"
				}
				fmt.Printf("%s %s %s\n", marker, s.Highlight.Render(t.ID),
					s.Subtle.Render(fmt.Sprintf("(%s, %s) %s", variant, origin, t.Metadata.Name)))
			}
			return nil
		},
	}
}
