package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billycemerson/Spotify-Collab/internal/collab"
	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/pipeline"
	events "github.com/billycemerson/Spotify-Collab/internal/progress"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOptions(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	assert.Equal(t, collab.NodeKeyID, m.nodeKey)

	m = update(t, m, key("ctrl+o"))
	m = update(t, m, key("ctrl+t"))
	m = update(t, m, key("ctrl+x"))
	m = update(t, m, key("ctrl+l"))

	assert.Equal(t, collab.NodeKeyName, m.nodeKey)
	assert.True(t, m.weighted)
	assert.True(t, m.skipFetch)
	assert.True(t, m.verbose)
	assert.Empty(t, m.textInput.Value(), "option keys are not typed into the input")

	view := m.View()
	assert.Contains(t, view, "Node key: name")
	assert.Contains(t, view, "[×] Weighted centrality")
}

func TestEnter_InvalidPlaylist(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.textInput.SetValue("https://open.spotify.com/album/abc")

	m = update(t, m, key("enter"))
	assert.Equal(t, StateInput, m.state)
	require.Error(t, m.inputErr)
	assert.Contains(t, m.View(), "not a playlist link")
}

func TestEnter_StartsRun(t *testing.T) {
	settings := config.DefaultSettings()
	settings.DataPath = t.TempDir()
	m := NewModel(settings)
	m = update(t, m, key("ctrl+x"))

	m = update(t, m, key("enter"))
	require.Equal(t, StateRunning, m.state)
	require.NotNil(t, m.runner)
	assert.Equal(t, pipeline.Stages()[1:], m.stages, "skip fetch drops the first stage")
	assert.Equal(t, pipeline.StageTransform, m.currentStage())
	assert.Equal(t, settings.DataPath, m.runner.Paths().DataPath)
	m.cancel()
}

func runningModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(config.DefaultSettings())
	m.state = StateRunning
	m.stages = pipeline.Stages()
	m.runner = pipeline.NewRunner(config.DefaultSettings(), nil)
	return m
}

func TestStageDone(t *testing.T) {
	m := runningModel(t)

	for i, stage := range m.stages {
		m = update(t, m, StageDoneMsg{Stage: stage})
		if i < len(m.stages)-1 {
			assert.Equal(t, StateRunning, m.state)
			assert.Equal(t, i+1, m.stageIdx)
		}
	}
	assert.Equal(t, StateComplete, m.state)
	assert.Contains(t, m.View(), "Pipeline Complete")
}

func TestStageDone_Error(t *testing.T) {
	m := runningModel(t)

	m = update(t, m, StageDoneMsg{Stage: pipeline.StageFetch, Err: errors.New("no network")})
	assert.Equal(t, StateError, m.state)
	assert.EqualError(t, m.err, "fetch stage: no network")

	m = update(t, m, key("r"))
	assert.Equal(t, StateInput, m.state)
	assert.Nil(t, m.err)
	assert.Nil(t, m.runner)
}

func TestEscCancelsRun(t *testing.T) {
	m := runningModel(t)

	m = update(t, m, key("esc"))
	assert.Equal(t, StateError, m.state)
	assert.ErrorIs(t, m.err, errCancelled)
	assert.Error(t, m.ctx.Err())

	// The stage returning afterwards does not change the state.
	m = update(t, m, StageDoneMsg{Stage: pipeline.StageFetch, Err: m.ctx.Err()})
	assert.ErrorIs(t, m.err, errCancelled)
}

func TestProgressLogs(t *testing.T) {
	m := runningModel(t)

	m = update(t, m, ProgressMsg{Event: events.Event{Message: "hidden", Level: events.LevelVerbose}})
	assert.Empty(t, m.logs, "verbose events are dropped unless enabled")

	for i := range maxLogs + 3 {
		m = update(t, m, ProgressMsg{Event: events.Event{Message: fmt.Sprintf("event %d", i), Level: events.LevelInfo}})
	}
	require.Len(t, m.logs, maxLogs)
	assert.Equal(t, "event 3", m.logs[0].Message)
	assert.Contains(t, m.View(), "event 12")
}

func TestPercent(t *testing.T) {
	m := runningModel(t)
	assert.Zero(t, m.percent())

	m.processed, m.total = 25, 50
	assert.InDelta(t, 0.125, m.percent(), 1e-9)

	m.stageIdx = 2
	assert.InDelta(t, 0.5, m.percent(), 1e-9, "fetch progress only counts during fetch")
}
