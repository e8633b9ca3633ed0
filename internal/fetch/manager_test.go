package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/progress"
	"github.com/billycemerson/Spotify-Collab/internal/spotify/dto"
)

type fakeCatalog struct {
	items       []dto.JSONPlaylistItem
	artists     map[string]model.RawArtist
	albums      map[string]model.RawAlbum
	artistCalls map[string]int
	albumCalls  map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		artists:     map[string]model.RawArtist{},
		albums:      map[string]model.RawAlbum{},
		artistCalls: map[string]int{},
		albumCalls:  map[string]int{},
	}
}

func (f *fakeCatalog) Playlist(context.Context, string) (*dto.JSONPlaylist, error) {
	return &dto.JSONPlaylist{ID: "pl", Name: "Top 50"}, nil
}

func (f *fakeCatalog) PlaylistTracks(context.Context, string) ([]dto.JSONPlaylistItem, error) {
	return f.items, nil
}

func (f *fakeCatalog) Artist(_ context.Context, id string) (model.RawArtist, error) {
	f.artistCalls[id]++
	a, ok := f.artists[id]
	if !ok {
		return model.RawArtist{}, errors.New("boom")
	}
	return a, nil
}

func (f *fakeCatalog) Album(_ context.Context, id string) (model.RawAlbum, error) {
	f.albumCalls[id]++
	a, ok := f.albums[id]
	if !ok {
		return model.RawAlbum{}, errors.New("boom")
	}
	return a, nil
}

func intPtr(v int) *int { return &v }

func track(id string, pop int, album string, artists ...string) dto.JSONPlaylistItem {
	refs := make([]dto.JSONArtistRef, len(artists))
	for i, a := range artists {
		refs[i] = dto.JSONArtistRef{ID: a}
	}
	return dto.JSONPlaylistItem{Track: &dto.JSONTrack{
		ID:         id,
		Name:       "Track " + id,
		Popularity: intPtr(pop),
		DurationMS: intPtr(200000),
		Artists:    refs,
		Album:      dto.JSONAlbumRef{ID: album},
	}}
}

func TestManager_Run(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists["a"] = model.RawArtist{ID: "a", Name: "Alice"}
	catalog.artists["b"] = model.RawArtist{ID: "b", Name: "Bob"}
	catalog.albums["al1"] = model.RawAlbum{ID: "al1", Name: "Debut", AlbumType: "album"}
	catalog.items = []dto.JSONPlaylistItem{
		track("t1", 80, "al1", "a", "b"),
		{Track: nil},
		track("t2", 60, "al1", "a"),
	}

	var events []progress.Event
	manager := NewManager(catalog, func(e progress.Event) { events = append(events, e) })

	bundles, err := manager.Run(context.Background(), "pl")
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	collab := bundles[0]
	assert.True(t, collab.IsCollab)
	assert.Equal(t, []string{"Bob"}, collab.CollabWith["Alice"])
	assert.Equal(t, []string{"Alice"}, collab.CollabWith["Bob"])
	assert.Equal(t, "Debut", collab.Album.Name)

	solo := bundles[1]
	assert.False(t, solo.IsCollab)
	assert.Empty(t, solo.CollabWith)

	assert.Equal(t, 1, catalog.artistCalls["a"], "artist a should be fetched once")
	assert.Equal(t, 1, catalog.albumCalls["al1"], "album should be fetched once")

	processed, total := manager.Progress()
	assert.Equal(t, int32(3), processed)
	assert.Equal(t, int32(3), total)
	assert.Equal(t, "Top 50", manager.PlaylistName())
}

func TestManager_FailedLookupsDegrade(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists["a"] = model.RawArtist{ID: "a", Name: "Alice"}
	catalog.items = []dto.JSONPlaylistItem{
		track("t1", 50, "missing-album", "a", "ghost"),
		track("t2", 40, "missing-album", "ghost"),
	}

	var warnings int
	manager := NewManager(catalog, func(e progress.Event) {
		if e.Level == progress.LevelWarning {
			warnings++
		}
	})

	bundles, err := manager.Run(context.Background(), "pl")
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	ghost := bundles[0].Artists[1]
	assert.Equal(t, "ghost", ghost.ID)
	assert.True(t, ghost.IsEmpty())
	assert.Contains(t, bundles[0].CollabWith, UnknownArtist)
	assert.Equal(t, "missing-album", bundles[0].Album.ID)
	assert.Empty(t, bundles[0].Album.Name)

	assert.Equal(t, 1, catalog.artistCalls["ghost"], "failed lookups are cached")
	assert.Equal(t, 1, catalog.albumCalls["missing-album"])
	assert.Equal(t, 2, warnings)
}

func TestManager_Cancelled(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.items = []dto.JSONPlaylistItem{track("t1", 50, "", "a")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManager(catalog, nil).Run(ctx, "pl")
	assert.ErrorIs(t, err, context.Canceled)
}
