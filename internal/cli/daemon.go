package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/appearance"
	"github.com/bnema/themectl/internal/theme"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the auto-switch daemon",
		Long: `Runs the scheduling engine and the appearance monitor until
interrupted. Theme switches triggered by the schedule or by OS
appearance changes go through the same apply path as the CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			unsubscribe := app.Resolver.OnChange(func(pref appearance.Preference) {
				app.Log.Info().Bool("dark", pref.PrefersDark).Str("source", pref.Source).
					Msg("appearance changed")
				app.Scheduler.OnAppearanceChanged(ctx, pref.PrefersDark)
			})
			defer unsubscribe()

			monitor := appearance.NewMonitor(app.Resolver, app.Config.Scheduler.AppearancePollInterval)
			monitor.Start(ctx)
			defer monitor.Stop()

			app.Scheduler.Start(ctx)
			defer app.Scheduler.Stop()

			// Surface custom theme churn while running; List re-scans
			// disk, so the callback only needs to log.
			if watcher, err := theme.Watch(app.Config.Themes.CustomDir, app.Log, func() {
				app.Log.Info().Msg("custom themes changed")
			}); err == nil {
				defer watcher.Close()
			} else {
				app.Log.Debug().Err(err).Msg("custom theme watch unavailable")
			}

			app.ConfigManager.Watch()

			fmt.Println("themectl daemon running; press Ctrl-C to stop")
			<-ctx.Done()
			return nil
		},
	}
}
