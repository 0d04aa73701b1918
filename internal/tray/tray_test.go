package tray

import "testing"

func TestEmojiForStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: "recording", want: "🔴"},
		{status: "paused", want: "⏸️"},
		{status: "idle", want: "🟢"},
		{status: "error", want: "⚪️"},
		{status: "unknown", want: "🟢"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := emojiForStatus(tt.status); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestMenuTitles verifies the titles shown for each recording state.
func TestMenuTitles(t *testing.T) {
	if got := startStopTitle(false); got != "Start Recording" {
		t.Errorf("expected Start Recording, got %s", got)
	}
	if got := startStopTitle(true); got != "Stop Recording" {
		t.Errorf("expected Stop Recording, got %s", got)
	}
	if got := pauseTitle(false); got != "Pause" {
		t.Errorf("expected Pause, got %s", got)
	}
	if got := pauseTitle(true); got != "Resume" {
		t.Errorf("expected Resume, got %s", got)
	}
}
