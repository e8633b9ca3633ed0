package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/progress"
	"github.com/billycemerson/Spotify-Collab/internal/spotify/dto"
)

type fakeCatalog struct {
	items []dto.JSONPlaylistItem
}

func (f *fakeCatalog) Playlist(context.Context, string) (*dto.JSONPlaylist, error) {
	return &dto.JSONPlaylist{Name: "Test"}, nil
}

func (f *fakeCatalog) PlaylistTracks(context.Context, string) ([]dto.JSONPlaylistItem, error) {
	return f.items, nil
}

func (f *fakeCatalog) Artist(_ context.Context, id string) (model.RawArtist, error) {
	if id == "broken" {
		return model.RawArtist{}, errors.New("lookup failed")
	}
	pop := 50
	return model.RawArtist{ID: id, Name: "Artist " + id, Popularity: &pop, Genres: []string{"pop"}}, nil
}

func (f *fakeCatalog) Album(_ context.Context, id string) (model.RawAlbum, error) {
	return model.RawAlbum{ID: id, Name: "Album " + id, AlbumType: "single", ReleaseDate: "2024-02-02"}, nil
}

func item(id string, pop int, artists ...string) dto.JSONPlaylistItem {
	refs := make([]dto.JSONArtistRef, len(artists))
	for i, a := range artists {
		refs[i] = dto.JSONArtistRef{ID: a}
	}
	dur := 180000 + pop*1000
	return dto.JSONPlaylistItem{Track: &dto.JSONTrack{
		ID:         id,
		Name:       "Track " + id,
		Popularity: &pop,
		DurationMS: &dur,
		Artists:    refs,
		Album:      dto.JSONAlbumRef{ID: "al-" + id},
	}}
}

func testSettings(t *testing.T) *config.Settings {
	dir := t.TempDir()
	s := config.DefaultSettings()
	s.DataPath = filepath.Join(dir, "data")
	s.ResultsPath = filepath.Join(dir, "results")
	s.LayoutIterations = 5
	return s
}

func TestRunner_All(t *testing.T) {
	catalog := &fakeCatalog{items: []dto.JSONPlaylistItem{
		item("t1", 80, "a", "b"),
		item("t2", 60, "b", "c"),
		item("t3", 70, "a"),
		item("t4", 40, "d", "e", "broken"),
		{Track: nil},
	}}

	var warnings []string
	runner := NewRunner(testSettings(t), func(e progress.Event) {
		if e.Level == progress.LevelWarning {
			warnings = append(warnings, e.Message)
		}
	})
	runner.catalog = catalog

	require.NoError(t, runner.All(context.Background()))

	processed, total := runner.FetchProgress()
	assert.Equal(t, int32(5), processed)
	assert.Equal(t, int32(5), total)
	assert.NotEmpty(t, warnings, "the broken artist lookup is reported")

	paths := runner.Paths()
	for _, f := range []string{
		paths.RawFile(config.DefaultPlaylistID),
		paths.DataFile(model.TracksFile),
		paths.DataFile(model.AlbumsFile),
		paths.DataFile(model.ArtistsFile),
		paths.DataFile(model.TrackArtistsFile),
		paths.DataFile(model.WideTableFile),
		paths.ResultFile(model.MetricsFile),
		paths.ResultFile(model.GraphExportFile),
		paths.ResultFile(model.NetworkImageFile),
		paths.ResultFile(model.SummaryFile),
		paths.CommunityFile(false, 1),
		paths.CommunityFile(false, 2),
	} {
		assert.FileExists(t, f)
	}
}

func TestRunner_NameMode(t *testing.T) {
	settings := testSettings(t)
	settings.NodeKey = "name"
	settings.CommunityThreshold = 2

	runner := NewRunner(settings, nil)
	runner.catalog = &fakeCatalog{items: []dto.JSONPlaylistItem{item("t1", 80, "a", "b")}}

	require.NoError(t, runner.All(context.Background()))
	assert.FileExists(t, runner.Paths().CommunityFile(true, 1))
}

func TestRunner_StagesNeedInputs(t *testing.T) {
	runner := NewRunner(testSettings(t), nil)

	for _, stage := range []Stage{StageTransform, StageCollab, StageAnalyze} {
		assert.Error(t, runner.Run(context.Background(), stage), string(stage))
	}
	assert.Error(t, runner.Run(context.Background(), Stage("bogus")))
}

func TestRunner_FetchNeedsCredentials(t *testing.T) {
	settings := testSettings(t)
	settings.ClientID, settings.ClientSecret = "", ""

	err := NewRunner(settings, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}

func TestStages(t *testing.T) {
	assert.Equal(t, []Stage{StageFetch, StageTransform, StageCollab, StageAnalyze}, Stages())
}
