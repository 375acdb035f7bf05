package ui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxlabs/voxbooth/booth"
	"github.com/voxlabs/voxbooth/internal/audio"
)

// Messages for Bubble Tea communication between the controllers and the
// UI.

// recordingStartedMsg indicates the microphone request completed.
type recordingStartedMsg struct {
	err error
}

// recordingStoppedMsg indicates capture stopped and a take (maybe)
// landed.
type recordingStoppedMsg struct {
	err error
}

// takePlayedMsg indicates a take playback attempt finished starting.
type takePlayedMsg struct {
	id  string
	err error
}

// takeSavedMsg indicates a save-to-disk attempt completed.
type takeSavedMsg struct {
	id  string
	err error
}

// speakingTickMsg drives the preview status refresh while speaking.
type speakingTickMsg time.Time

// scriptFileChangedMsg indicates the watched script file was modified
// on disk.
type scriptFileChangedMsg struct{}

// scriptReloadedMsg carries freshly loaded script content.
type scriptReloadedMsg struct {
	content string
	err     error
}

// editorFinishedMsg indicates the external $EDITOR session ended.
type editorFinishedMsg struct {
	path string
	err  error
}

// statusFlashMsg sets a transient status-line message.
type statusFlashMsg string

// clearFlashMsg clears the transient status-line message.
type clearFlashMsg struct{}

// startRecordingCmd requests the microphone off the UI thread; the
// request may block on the device.
func startRecordingCmd(c *booth.Controller) tea.Cmd {
	return func() tea.Msg {
		return recordingStartedMsg{err: c.StartRecording(context.Background())}
	}
}

// stopRecordingCmd stops capture and assembles the take.
func stopRecordingCmd(c *booth.Controller) tea.Cmd {
	return func() tea.Msg {
		return recordingStoppedMsg{err: c.StopRecording()}
	}
}

// playTakeCmd plays the identified take through the player.
func playTakeCmd(c *booth.Controller, player audio.Player, id string) tea.Cmd {
	return func() tea.Msg {
		take, ok := c.Take(id)
		if !ok {
			return takePlayedMsg{id: id}
		}
		pcm, err := take.Clip.Bytes()
		if err != nil {
			return takePlayedMsg{id: id, err: err}
		}
		return takePlayedMsg{id: id, err: player.Play(pcm)}
	}
}

// saveTakeCmd writes the identified take to disk.
func saveTakeCmd(c *booth.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return takeSavedMsg{id: id, err: c.SaveTake(id)}
	}
}

// speakingTickCmd refreshes the status line while an utterance plays.
func speakingTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return speakingTickMsg(t)
	})
}

// loadScriptCmd reads the script file from disk.
func loadScriptCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return scriptReloadedMsg{err: err}
		}
		return scriptReloadedMsg{content: string(data)}
	}
}

// flashCmd shows a transient status message for a few seconds.
func flashCmd(text string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return statusFlashMsg(text) },
		tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearFlashMsg{} }),
	)
}
