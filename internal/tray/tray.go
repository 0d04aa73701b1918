package tray

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"
	"github.com/rs/zerolog"

	"github.com/petems/recorder/internal/app"
	"github.com/petems/recorder/internal/config"
	"github.com/petems/recorder/internal/logging"
)

type UI struct {
	app     *app.App
	cfg     *config.Config
	version string
	commit  string
	log     zerolog.Logger

	// Menu items
	mStartStop *systray.MenuItem
	mPause     *systray.MenuItem
	mCopyPath  *systray.MenuItem
}

// Status update methods for the app to call
func (u *UI) SetIdle() {
	u.updateStatus("idle")
	u.setRecordingMenu(false)
}

func (u *UI) SetRecording() {
	u.updateStatus("recording")
	u.setRecordingMenu(true)
	if u.mPause != nil {
		u.mPause.SetTitle(pauseTitle(false))
	}
}

func (u *UI) SetPaused() {
	u.updateStatus("paused")
	if u.mPause != nil {
		u.mPause.SetTitle(pauseTitle(true))
	}
}

func (u *UI) SetError() {
	u.updateStatus("error")
	u.setRecordingMenu(false)
}

func New(application *app.App, cfg *config.Config, log zerolog.Logger, version, commit string) *UI {
	return &UI{
		app:     application,
		cfg:     cfg,
		version: version,
		commit:  commit,
		log:     log,
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(application *app.App) {
	u.app = application
}

// Run blocks until the tray is quit. It must be called from the main goroutine.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	u.updateStatus("idle")
	systray.SetTooltip("Microphone recorder")

	u.mStartStop = systray.AddMenuItem(startStopTitle(false), "Start or stop a recording")
	u.mPause = systray.AddMenuItem(pauseTitle(false), "Suspend the recording program")
	u.mPause.Disable()
	systray.AddSeparator()

	u.mCopyPath = systray.AddMenuItem("Copy Recording Path", "Copy the last recording's path")
	u.mCopyPath.Disable()

	systray.AddSeparator()
	mAbout := systray.AddMenuItem("About", "About recorder")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	// Event loop
	go u.handleEvents(mAbout, mQuit)
}

func (u *UI) handleEvents(mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mStartStop.ClickedCh:
			u.toggleRecording()
		case <-u.mPause.ClickedCh:
			if _, err := u.app.TogglePause(); err != nil {
				u.log.Error().Err(err).Msg("Failed to toggle pause")
			}
		case <-u.mCopyPath.ClickedCh:
			u.copyPath()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) toggleRecording() {
	if u.app.IsRecording() {
		if err := u.app.Stop(); err != nil {
			u.log.Error().Err(err).Msg("Failed to stop recording")
		}
		return
	}

	path, err := u.app.StartFile(u.cfg.Options(), u.cfg.RecordingsDir)
	if err != nil {
		u.log.Error().Err(err).Msg("Failed to start recording")
		return
	}
	u.mCopyPath.Enable()
	u.log.Info().Str("path", path).Msg("Recording to file")
}

func (u *UI) copyPath() {
	path := u.app.Output()
	if path == "" {
		return
	}
	if err := clipboard.WriteAll(path); err != nil {
		u.log.Error().Err(err).Msg("Failed to write clipboard")
		return
	}
	u.log.Info().Str("path", path).Msg("Copied recording path")
}

func (u *UI) showAbout() {
	fmt.Printf("recorder %s (%s)\nConfig: %s\nLogs: %s\n", u.version, u.commit, config.Path(), logging.LogPath())
}

func (u *UI) onExit() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.app.Shutdown(ctx); err != nil {
		u.log.Error().Err(err).Msg("Shutdown error")
	}
}

func (u *UI) setRecordingMenu(recording bool) {
	if u.mStartStop == nil {
		return
	}
	u.mStartStop.SetTitle(startStopTitle(recording))
	if recording {
		u.mPause.Enable()
	} else {
		u.mPause.SetTitle(pauseTitle(false))
		u.mPause.Disable()
	}
}

// updateStatus sets the tray title with microphone emoji and status indicator
func (u *UI) updateStatus(status string) {
	systray.SetTitle(fmt.Sprintf("🎤 %s", emojiForStatus(status)))
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(status string) string {
	switch status {
	case "recording":
		return "🔴" // Red - recording
	case "paused":
		return "⏸️"
	case "idle":
		return "🟢" // Green - ready/idle
	case "error":
		return "⚪️" // White - error
	default:
		return "🟢" // Green - default to ready
	}
}

func startStopTitle(recording bool) string {
	if recording {
		return "Stop Recording"
	}
	return "Start Recording"
}

func pauseTitle(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
