package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/state"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change user preferences",
	}
	cmd.AddCommand(newPrefsGetCmd(), newPrefsSetCmd(), newPrefsAppCmd())
	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the preferences document",
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
			data, err := json.MarshalIndent(prefs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference field",
		Long: `Supported keys: default-light, default-dark, auto-switch (on|off),
mode (system|schedule), schedule-light (HH:MM), schedule-dark (HH:MM),
dynamic-wallpaper (on|off), notifications (on|off), hook-script (path).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			key, value := args[0], args[1]
			var apply func(p *state.Preferences)
			switch key {
			case "default-light":
				apply = func(p *state.Preferences) { p.DefaultLightTheme = value }
			case "default-dark":
				apply = func(p *state.Preferences) { p.DefaultDarkTheme = value }
			case "auto-switch":
				apply = func(p *state.Preferences) { p.AutoSwitch.Enabled = parseOnOff(value) }
			case "mode":
				apply = func(p *state.Preferences) { p.AutoSwitch.Mode = value }
			case "schedule-light":
				apply = func(p *state.Preferences) { p.Schedule.Light = value }
			case "schedule-dark":
				apply = func(p *state.Preferences) { p.Schedule.Dark = value }
			case "dynamic-wallpaper":
				apply = func(p *state.Preferences) { p.DynamicWallpaper = parseOnOff(value) }
			case "notifications":
				apply = func(p *state.Preferences) { p.Notifications = parseOnOff(value) }
			case "hook-script":
				apply = func(p *state.Preferences) { p.HookScript = value }
			default:
				return fmt.Errorf("unknown preference key %q", key)
			}

			if _, err := app.Prefs.Update(apply); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}
}

func newPrefsAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app <enable|disable> <name>",
		Short: "Enable or disable an application integration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			action, name := args[0], args[1]
			if _, ok := app.Registry.Get(name); !ok {
				return fmt.Errorf("unknown application %q (known: %v)", name, app.Registry.Names())
			}

			var enabled bool
			switch action {
			case "enable":
				enabled = true
			case "disable":
				enabled = false
			default:
				return fmt.Errorf("action must be enable or disable, got %q", action)
			}

			if _, err := app.Prefs.Update(func(p *state.Preferences) {
				p.SetAppEnabled(name, enabled)
			}); err != nil {
				return err
			}
			fmt.Printf("%s: %sd\n", name, action)
			return nil
		},
	}
	return cmd
}

func parseOnOff(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s == "on"
}
