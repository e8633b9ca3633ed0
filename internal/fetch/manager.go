package fetch

import (
	"context"
	"sync/atomic"

	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/progress"
	"github.com/billycemerson/Spotify-Collab/internal/spotify"
	"github.com/billycemerson/Spotify-Collab/internal/spotify/dto"
)

// UnknownArtist stands in for the name of an artist whose lookup failed.
const UnknownArtist = "Unknown"

// Catalog is the subset of *spotify.Catalog the manager uses.
type Catalog interface {
	Playlist(ctx context.Context, playlistID string) (*dto.JSONPlaylist, error)
	PlaylistTracks(ctx context.Context, playlistID string) ([]dto.JSONPlaylistItem, error)
	Artist(ctx context.Context, artistID string) (model.RawArtist, error)
	Album(ctx context.Context, albumID string) (model.RawAlbum, error)
}

// Manager turns a playlist into raw bundles.
//
// For every playlist item it resolves the artist and album details through
// a per-run cache. A failed lookup is logged and replaced with an empty
// record; it never aborts the run. Only context cancellation and a failure
// to list the playlist itself are fatal.
type Manager struct {
	catalog Catalog
	cache   *spotify.Cache

	playlistName string
	processed    int32
	total        int32

	onProgress progress.Func
}

// NewManager creates a new fetch Manager with a fresh cache.
func NewManager(catalog Catalog, onProgress progress.Func) *Manager {
	return &Manager{
		catalog:    catalog,
		cache:      spotify.NewCache(),
		onProgress: onProgress,
	}
}

// Run fetches all tracks of a playlist and returns one bundle per track.
func (m *Manager) Run(ctx context.Context, playlistID string) ([]model.Bundle, error) {
	if playlist, err := m.catalog.Playlist(ctx, playlistID); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.onProgress.Emit(progress.LevelWarning, "Could not read playlist header: %v", err)
	} else {
		m.playlistName = playlist.Name
		m.onProgress.Emit(progress.LevelInfo, "Playlist: %s", playlist.Name)
	}

	items, err := m.catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	atomic.StoreInt32(&m.total, int32(len(items)))
	m.onProgress.Emit(progress.LevelSuccess, "%d tracks found in playlist", len(items))

	bundles := make([]model.Bundle, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if item.Track == nil {
			atomic.AddInt32(&m.processed, 1)
			continue
		}

		bundle, err := m.buildBundle(ctx, item.Track)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)

		atomic.AddInt32(&m.processed, 1)
		m.onProgress.Emit(progress.LevelVerbose, "Processed: %s", item.Track.Name)
	}

	artists, albums, hits := m.cache.Stats()
	m.onProgress.Emit(progress.LevelVerbose, "Cache: %d artists, %d albums, %d hits", artists, albums, hits)

	return bundles, nil
}

// Progress returns how many playlist items have been processed so far.
func (m *Manager) Progress() (processed, total int32) {
	return atomic.LoadInt32(&m.processed), atomic.LoadInt32(&m.total)
}

// PlaylistName returns the playlist name once Run has read it.
func (m *Manager) PlaylistName() string {
	return m.playlistName
}

func (m *Manager) buildBundle(ctx context.Context, track *dto.JSONTrack) (model.Bundle, error) {
	artists := make([]model.RawArtist, 0, len(track.Artists))
	names := make([]string, 0, len(track.Artists))
	for _, ref := range track.Artists {
		artist, err := m.resolveArtist(ctx, ref)
		if err != nil {
			return model.Bundle{}, err
		}
		artists = append(artists, artist)

		name := artist.Name
		if name == "" {
			name = UnknownArtist
		}
		names = append(names, name)
	}

	album, err := m.resolveAlbum(ctx, track.Album)
	if err != nil {
		return model.Bundle{}, err
	}

	isCollab := len(names) > 1
	collabWith := make(map[string][]string)
	if isCollab {
		for i, name := range names {
			others := make([]string, 0, len(names)-1)
			for j, other := range names {
				if j != i {
					others = append(others, other)
				}
			}
			collabWith[name] = others
		}
	}

	return model.Bundle{
		TrackID:         track.ID,
		TrackName:       track.Name,
		TrackPopularity: track.Popularity,
		DurationMS:      track.DurationMS,
		IsCollab:        isCollab,
		Artists:         artists,
		Album:           album,
		CollabWith:      collabWith,
	}, nil
}

// resolveArtist returns the cached or freshly fetched artist. The only
// error it returns is context cancellation.
func (m *Manager) resolveArtist(ctx context.Context, ref dto.JSONArtistRef) (model.RawArtist, error) {
	if ref.ID == "" {
		// Local files carry artists without IDs; there is nothing to look up.
		return model.RawArtist{Name: ref.Name}, nil
	}
	if artist, ok := m.cache.Artist(ref.ID); ok {
		return artist, nil
	}

	artist, err := m.catalog.Artist(ctx, ref.ID)
	if err != nil {
		if ctx.Err() != nil {
			return model.RawArtist{}, ctx.Err()
		}
		m.onProgress.Emit(progress.LevelWarning, "Error fetching artist %s: %v", ref.ID, err)
		artist = model.RawArtist{ID: ref.ID}
	}
	m.cache.PutArtist(ref.ID, artist)
	return artist, nil
}

// resolveAlbum returns the cached or freshly fetched album. The only error
// it returns is context cancellation.
func (m *Manager) resolveAlbum(ctx context.Context, ref dto.JSONAlbumRef) (model.RawAlbum, error) {
	if ref.ID == "" {
		return model.RawAlbum{}, nil
	}
	if album, ok := m.cache.Album(ref.ID); ok {
		return album, nil
	}

	album, err := m.catalog.Album(ctx, ref.ID)
	if err != nil {
		if ctx.Err() != nil {
			return model.RawAlbum{}, ctx.Err()
		}
		m.onProgress.Emit(progress.LevelWarning, "Error fetching album %s: %v", ref.ID, err)
		album = model.RawAlbum{ID: ref.ID}
	}
	m.cache.PutAlbum(ref.ID, album)
	return album, nil
}
