package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/adapter"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup <app>",
		Short: "Wire an application's config to the current-theme pointer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			a, ok := app.Registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown application %q (known: %v)", args[0], app.Registry.Names())
			}
			setuper, ok := a.(adapter.Setuper)
			if !ok {
				return fmt.Errorf("%s does not require setup", args[0])
			}

			outcome, err := setuper.Setup(app.Activator.PointerPath())
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}

			s := app.Styles
			switch outcome.Action {
			case adapter.SetupCreated:
				fmt.Println(s.Success.Render("Config updated."))
			case adapter.SetupAlreadyDone:
				fmt.Println(s.Subtle.Render("Already set up."))
			case adapter.SetupClipboard:
				fmt.Println(s.Warning.Render("Add this to your config:"))
				fmt.Println(outcome.Snippet)
			}
			return nil
		},
	}
}
