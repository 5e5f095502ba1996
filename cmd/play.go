package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/handoff/internal/config"
	"github.com/llehouerou/handoff/internal/decoder/audio"
	"github.com/llehouerou/handoff/internal/icons"
	"github.com/llehouerou/handoff/internal/mpris"
	"github.com/llehouerou/handoff/internal/notify"
	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/state"
	"github.com/llehouerou/handoff/internal/stderr"
	"github.com/llehouerou/handoff/internal/surface"
	"github.com/llehouerou/handoff/internal/tui"
)

var (
	playLogFile  string
	playLogLevel string
)

var playCmd = &cobra.Command{
	Use:   "play <file-or-url>",
	Short: "Play a media file",
	Long: `Play a media file in the terminal.

Keys: space toggles playback, left/right seek, p enters the overlay and
esc leaves it, b sends playback to the background. Press ? for the full
list.

The terminal is taken over by the player, so logs go to a file
(default: $XDG_STATE_HOME/handoff/handoff.log).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "Log file path (default: config log_file, then the xdg state dir)")
	playCmd.Flags().StringVar(&playLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runPlay(_ *cobra.Command, args []string) error {
	locator := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile := firstNonEmpty(playLogFile, cfg.LogFile)
	if logFile == "" {
		if logFile, err = xdg.StateFile("handoff/handoff.log"); err != nil {
			return fmt.Errorf("failed to resolve log file: %w", err)
		}
	}
	logger, logCloser := setupLogger(logFile, firstNonEmpty(playLogLevel, cfg.LogLevel))
	defer logCloser.Close()

	logger.Info().Str("version", version).Str("locator", locator).Msg("starting")

	capture, err := stderr.Start(logger)
	if err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer capture.Stop()

	store, err := state.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing state")
		}
	}()

	icons.Init(cfg.Icons)

	volume, muted, err := state.Initial(store, cfg.Volume)
	if err != nil {
		logger.Warn().Err(err).Msg("reading saved volume")
	}

	bridge := surface.NewBridge(logger)
	holder := playback.NewHolder(func() *playback.Controller {
		return playback.New(audio.Factory(logger),
			playback.WithLogger(logger),
			playback.WithSessionRegistry(bridge),
			playback.WithInitialVolume(volume, muted),
		)
	})
	defer holder.Release()
	ctrl := holder.Get()

	sender := &tui.Sender{}
	host := tui.NewHost(sender)
	main, mini := tui.NewPane("main"), tui.NewPane("mini")

	modes := overlay.NewBroadcaster()
	adapter := overlay.NewAdapter(host, bridge, ctrl,
		overlay.WithLogger(logger),
		overlay.WithBroadcaster(modes),
		overlay.WithEntryRegistry(host),
		overlay.WithSkipInterval(cfg.SkipInterval()),
		overlay.WithDefaultAspect(cfg.DefaultAspect()),
	)
	bridge.AddListener(adapter)
	bridge.AddListener(tui.NewPrimary(bridge, main, sender))
	ctrl.AddObserver(adapter)
	ctrl.AddObserver(state.NewVolumeRecorder(store))
	defer modes.Watch(func(c overlay.ModeChange) {
		logger.Info().Bool("in_overlay", c.InOverlay).Int("width", c.Width).Int("height", c.Height).Msg("overlay mode")
	})()

	if cfg.MPRIS.IsEnabled() {
		remote, err := mpris.New(ctrl, cfg.SkipInterval(), logger)
		if err != nil {
			logger.Warn().Err(err).Msg("mpris unavailable")
		} else {
			defer remote.Close()
			ctrl.AddObserver(remote)
		}
	}

	if cfg.Notifications.IsEnabled() {
		notifier, err := notify.New()
		if err != nil {
			logger.Warn().Err(err).Msg("notifications unavailable")
		} else {
			nowPlaying := notify.NewNowPlaying(notifier, adapter, cfg.SkipInterval(), logger)
			defer nowPlaying.Close()
			ctrl.AddObserver(nowPlaying)
			defer modes.Watch(nowPlaying.ModeChanged)()
		}
	}

	model := tui.New(tui.Deps{
		Controller:   ctrl,
		Bridge:       bridge,
		Overlay:      adapter,
		Host:         host,
		Main:         main,
		Mini:         mini,
		SkipInterval: cfg.SkipInterval(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	sender.SetProgram(p)

	ctrl.Load(playback.LoadRequest{
		Locator:      locator,
		Remote:       strings.Contains(locator, "://"),
		InitOptions:  cfg.Decoder.InitOptions,
		MediaOptions: cfg.Decoder.MediaOptions,
		HWAccel:      cfg.HWAccel(),
	})
	ctrl.Play()

	_, err = p.Run()
	sender.SetFunc(nil)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal ui: %w", err)
	}

	logger.Info().Msg("stopped")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
