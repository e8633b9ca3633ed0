package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billycemerson/Spotify-Collab/internal/collab"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	assert.Equal(t, DefaultPlaylistID, s.PlaylistID)
	assert.Equal(t, 100, s.PageSize)
	assert.Equal(t, 10, s.CommunityThreshold)
	assert.Equal(t, 50.0, s.LabelThreshold)

	fetch := s.ToFetchConfig()
	assert.Equal(t, 100*time.Millisecond, fetch.RequestDelay)
	assert.Equal(t, 1, fetch.MaxRateLimitRetries)

	graph := s.ToGraphConfig()
	assert.Equal(t, collab.NodeKeyID, graph.NodeKey)
	assert.False(t, graph.Weighted)
	assert.Equal(t, 1000, graph.EigenMaxIter)

	render := s.ToRenderConfig()
	assert.Equal(t, uint64(42), render.Layout.Seed)
	assert.Equal(t, 0.3, render.Layout.K)
	assert.Equal(t, 1, render.Workers)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	s, err := Load(path)
	require.NoError(t, err, "missing file falls back to defaults")
	assert.Equal(t, DefaultSettings(), s)

	s.PlaylistID = "abc"
	s.NodeKey = "name"
	s.ClientSecret = "secret"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.PlaylistID)
	assert.Equal(t, collab.NodeKeyName, loaded.ToGraphConfig().NodeKey)
	assert.Empty(t, loaded.ClientSecret, "credentials are not persisted")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"page size zero", func(s *Settings) { s.PageSize = 0 }},
		{"page size above API maximum", func(s *Settings) { s.PageSize = 101 }},
		{"negative threshold", func(s *Settings) { s.CommunityThreshold = -1 }},
		{"negative label threshold", func(s *Settings) { s.LabelThreshold = -5 }},
		{"unknown node key", func(s *Settings) { s.NodeKey = "uri" }},
		{"no render workers", func(s *Settings) { s.RenderWorkers = 0 }},
		{"zero tolerance", func(s *Settings) { s.EigenTolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")

	s := DefaultSettings()
	require.NoError(t, s.LoadEnv())
	assert.ErrorIs(t, s.RequireCredentials(), ErrMissingCredentials)

	t.Setenv(EnvClientID, "id")
	t.Setenv(EnvClientSecret, "secret")
	require.NoError(t, s.LoadEnv())
	assert.NoError(t, s.RequireCredentials())
	assert.Equal(t, "id", s.ToFetchConfig().ClientID)
}
