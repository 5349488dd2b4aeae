package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent theme applies from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.Journal.Recent(limit)
			if err != nil {
				return err
			}
			s := app.Styles

			if len(entries) == 0 {
				fmt.Println(s.Subtle.Render("No applies recorded yet."))
				return nil
			}
			for _, e := range entries {
				status := s.Success.Render("ok")
				if !e.OK {
					status = s.ErrorText.Render("failed")
				}
				fmt.Printf("%s  %s  %s  %s  %s\n",
					e.CreatedAt.Local().Format(time.DateTime),
					s.Highlight.Render(e.ThemeID),
					e.Trigger, status,
					s.Subtle.Render(e.Duration.Round(time.Millisecond).String()))
				if e.FatalError != "" {
					fmt.Printf("    %s\n", s.ErrorText.Render(e.FatalError))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	return cmd
}
