package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/solar"
	"github.com/bnema/themectl/internal/state"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect or derive the auto-switch schedule",
	}
	cmd.AddCommand(newScheduleShowCmd(), newScheduleSolarCmd())
	return cmd
}

func newScheduleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the schedule boundaries and today's sun times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			prefs, err := app.Prefs.Load()
			if err != nil {
				return err
			}
			s := app.Styles

			fmt.Printf("%s enabled=%t mode=%s\n", s.Title.Render("Auto-switch:"),
				prefs.AutoSwitch.Enabled, prefs.AutoSwitch.Mode)
			fmt.Printf("%s light=%q dark=%q\n", s.Title.Render("Schedule:"),
				prefs.Schedule.Light, prefs.Schedule.Dark)

			loc := app.Config.Location
			times := solar.Calculate(loc.Latitude, loc.Longitude, time.Now())
			suffix := ""
			if times.Polar {
				suffix = s.Subtle.Render(" (polar fallback)")
			}
			fmt.Printf("%s sunrise=%s sunset=%s%s\n", s.Title.Render("Sun today:"),
				times.Sunrise.Format("15:04"), times.Sunset.Format("15:04"), suffix)
			return nil
		},
	}
}

func newScheduleSolarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solar",
		Short: "Fill the schedule from today's sunrise and sunset",
		Long: `Computes sunrise and sunset for the configured location and stores
them as the schedule's light and dark boundaries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			loc := app.Config.Location
			times := solar.Calculate(loc.Latitude, loc.Longitude, time.Now())

			light := times.Sunrise.Format("15:04")
			dark := times.Sunset.Format("15:04")
			if _, err := app.Prefs.Update(func(p *state.Preferences) {
				p.Schedule.Light = light
				p.Schedule.Dark = dark
			}); err != nil {
				return err
			}

			fmt.Printf("schedule set: light=%s dark=%s\n", light, dark)
			if times.Polar {
				fmt.Println(app.Styles.Warning.Render("Sun never rises or sets here today; used 06:00/18:00."))
			}
			return nil
		},
	}
}
