package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/theme"
)

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			st, err := app.State.Load()
			if err != nil {
				return err
			}
			s := app.Styles

			if st.CurrentTheme == "" {
				fmt.Println(s.Subtle.Render("No theme is active."))
				return nil
			}

			t, err := app.Themes.Get(st.CurrentTheme)
			if errors.Is(err, theme.ErrNotFound) {
				// The recorded theme was deleted; the reference dangles
				// until the next apply.
				fmt.Printf("%s %s\n", s.Warning.Render("Missing:"), st.CurrentTheme)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", s.Title.Render("Theme:"), s.Highlight.Render(t.ID))
			fmt.Printf("%s %s\n", s.Title.Render("Name:"), t.Metadata.Name)
			if !st.LastSwitched.IsZero() {
				fmt.Printf("%s %s\n", s.Title.Render("Switched:"), st.LastSwitched.Format(time.RFC1123))
			}
			if st.CurrentWallpaper != "" {
				fmt.Printf("%s %s\n", s.Title.Render("Wallpaper:"), st.CurrentWallpaper)
			}
			return nil
		},
	}
}
