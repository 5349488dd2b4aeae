// Package cli provides the command-line interface for themectl.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/themectl/internal/activation"
	"github.com/bnema/themectl/internal/adapter"
	"github.com/bnema/themectl/internal/appearance"
	"github.com/bnema/themectl/internal/cli/styles"
	"github.com/bnema/themectl/internal/config"
	"github.com/bnema/themectl/internal/fanout"
	"github.com/bnema/themectl/internal/journal"
	"github.com/bnema/themectl/internal/logging"
	"github.com/bnema/themectl/internal/orchestrator"
	"github.com/bnema/themectl/internal/scheduler"
	"github.com/bnema/themectl/internal/state"
	"github.com/bnema/themectl/internal/theme"
)

// App holds the wired components behind every CLI command.
// It replaces ambient globals: everything downstream receives its
// collaborators from here.
type App struct {
	ConfigManager *config.Manager
	Config        *config.Config
	Log           zerolog.Logger
	Styles        *styles.Theme

	Themes    *theme.Store
	State     *state.StateStore
	Prefs     *state.PreferencesStore
	Registry  *adapter.Registry
	Journal   *journal.Journal
	Activator *activation.Manager
	Orch      *orchestrator.Orchestrator
	Scheduler *scheduler.Engine
	Resolver  *appearance.Resolver
}

// NewApp loads configuration and wires every component.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := mgr.Get()

	log := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})

	statePath, err := config.GetStateFile()
	if err != nil {
		return nil, err
	}
	prefsPath, err := config.GetPreferencesFile()
	if err != nil {
		return nil, err
	}

	themes := theme.NewStore(cfg.Themes.BundledDir, cfg.Themes.CustomDir)
	stateStore := state.NewStateStore(statePath)
	prefsStore := state.NewPreferencesStore(prefsPath)
	registry := adapter.DefaultRegistry()

	jnl, err := journal.Open(cfg.Journal.Path, cfg.Journal.MaxEntries, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	activator := activation.NewManager(themes, stateStore, prefsStore, cfg.Pointer.Path, log)
	fo := fanout.New(registry, cfg.Notify.Timeout, log)

	orch := orchestrator.New(orchestrator.Options{
		Activator:        activator,
		Fanout:           fo,
		Prefs:            prefsStore,
		State:            stateStore,
		Themes:           themes,
		HookTimeout:      cfg.Hook.Timeout,
		WallpaperCommand: cfg.Wallpaper.Command,
		WallpaperTimeout: cfg.Wallpaper.Timeout,
		Recorder:         jnl,
		Logger:           log,
	})

	engine := scheduler.New(prefsStore, stateStore, orch, cfg.Scheduler.TickInterval, log)

	return &App{
		ConfigManager: mgr,
		Config:        cfg,
		Log:           log,
		Styles:        styles.Default(),
		Themes:        themes,
		State:         stateStore,
		Prefs:         prefsStore,
		Registry:      registry,
		Journal:       jnl,
		Activator:     activator,
		Orch:          orch,
		Scheduler:     engine,
		Resolver:      appearance.NewDefaultResolver(),
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Journal != nil {
		return a.Journal.Close()
	}
	return nil
}

// NewRootCmd creates the root command for themectl.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "themectl",
		Short: "Switch desktop themes across applications",
		Long: `themectl switches a named theme across terminals, editors, status bars
and other desktop applications, and keeps it in sync with the system
appearance or a daily schedule.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newApplyCmd(),
		newListCmd(),
		newCurrentCmd(),
		newDaemonCmd(),
		newPrefsCmd(),
		newScheduleCmd(),
		newHistoryCmd(),
		newSetupCmd(),
		newConfigCmd(),
	)
	return rootCmd
}
