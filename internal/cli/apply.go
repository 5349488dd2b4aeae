package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/orchestrator"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <theme>",
		Short: "Activate a theme and refresh all enabled applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			outcome, err := app.Orch.Apply(cmd.Context(), args[0], orchestrator.TriggerManual)
			if err != nil {
				return fmt.Errorf("apply failed: %w", err)
			}

			s := app.Styles
			fmt.Printf("%s %s\n", s.Success.Render("Applied"), s.Highlight.Render(outcome.Theme.ID))

			attempted := len(outcome.Fanout.Results)
			failed := outcome.Fanout.Failed()
			switch {
			case attempted == 0:
				fmt.Println(s.Subtle.Render("No applications enabled for refresh."))
			case failed == 0:
				fmt.Printf("%s\n", s.Subtle.Render(fmt.Sprintf("Refreshed %d application(s).", attempted)))
			default:
				fmt.Printf("%s\n", s.Warning.Render(
					fmt.Sprintf("Applied, but %d of %d integrations could not be refreshed:", failed, attempted)))
				for _, res := range outcome.Fanout.Results {
					if !res.OK {
						fmt.Printf("  %s %s (%s)\n", s.ErrorText.Render("✗"), res.App, res.Detail)
					}
				}
			}

			if outcome.Hook != nil && !outcome.Hook.OK() {
				fmt.Printf("%s\n", s.Warning.Render("Hook script failed; see logs."))
			}
			return nil
		},
	}
}
