package spotify

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/spotify/dto"
)

// MaxPageSize is the largest page the playlist tracks endpoint accepts.
const MaxPageSize = 100

// Getter performs an authenticated GET and decodes the JSON response.
// It is satisfied by *http.Client.
type Getter interface {
	Get(ctx context.Context, path string, params map[string]string, out any) error
}

// Catalog reads playlists, artists and albums from the Spotify Web API.
//
// Example usage:
//
//	catalog := NewCatalog(client, 100)
//
//	items, err := catalog.PlaylistTracks(ctx, "7KHJBz12xG3fPKErBd41K9")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, item := range items {
//	    if item.Track != nil {
//	        fmt.Println(item.Track.Name)
//	    }
//	}
type Catalog struct {
	client   Getter
	pageSize int
}

// NewCatalog creates a new Catalog.
//
// pageSize is clamped to [1, MaxPageSize].
func NewCatalog(client Getter, pageSize int) *Catalog {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Catalog{client: client, pageSize: pageSize}
}

// Playlist fetches the playlist header (id, name, track total).
func (c *Catalog) Playlist(ctx context.Context, playlistID string) (*dto.JSONPlaylist, error) {
	var playlist dto.JSONPlaylist
	params := map[string]string{"fields": "id,name,tracks.total"}
	if err := c.client.Get(ctx, "/playlists/"+url.PathEscape(playlistID), params, &playlist); err != nil {
		return nil, errors.Wrapf(err, "fetch playlist %s", playlistID)
	}
	return &playlist, nil
}

// PlaylistTracks fetches every item of a playlist, page by page.
//
// Paging stops at the first empty page or once the offset reaches the
// reported total.
func (c *Catalog) PlaylistTracks(ctx context.Context, playlistID string) ([]dto.JSONPlaylistItem, error) {
	path := "/playlists/" + url.PathEscape(playlistID) + "/tracks"

	var items []dto.JSONPlaylistItem
	for offset := 0; ; offset += c.pageSize {
		params := map[string]string{
			"limit":  strconv.Itoa(c.pageSize),
			"offset": strconv.Itoa(offset),
		}

		var page dto.JSONPlaylistPage
		if err := c.client.Get(ctx, path, params, &page); err != nil {
			return nil, errors.Wrapf(err, "fetch tracks of playlist %s at offset %d", playlistID, offset)
		}
		if len(page.Items) == 0 {
			break
		}
		items = append(items, page.Items...)
		if offset+c.pageSize >= page.Total {
			break
		}
	}
	return items, nil
}

// Artist fetches an artist detail object.
func (c *Catalog) Artist(ctx context.Context, artistID string) (model.RawArtist, error) {
	var artist model.RawArtist
	if err := c.client.Get(ctx, "/artists/"+url.PathEscape(artistID), nil, &artist); err != nil {
		return model.RawArtist{}, errors.Wrapf(err, "fetch artist %s", artistID)
	}
	return artist, nil
}

// Album fetches an album detail object.
func (c *Catalog) Album(ctx context.Context, albumID string) (model.RawAlbum, error) {
	var album model.RawAlbum
	if err := c.client.Get(ctx, "/albums/"+url.PathEscape(albumID), nil, &album); err != nil {
		return model.RawAlbum{}, errors.Wrapf(err, "fetch album %s", albumID)
	}
	return album, nil
}

// ParsePlaylistID accepts a bare playlist ID, a spotify:playlist: URI or an
// open.spotify.com playlist link and returns the ID.
//
// Example:
//
//	id, err := ParsePlaylistID("https://open.spotify.com/playlist/7KHJBz12xG3fPKErBd41K9?si=abc")
//	// id == "7KHJBz12xG3fPKErBd41K9"
func ParsePlaylistID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "spotify:playlist:"); ok {
		s = rest
	} else if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", errors.Wrapf(err, "parse playlist link %q", s)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 || parts[len(parts)-2] != "playlist" {
			return "", errors.Newf("not a playlist link: %q", s)
		}
		s = parts[len(parts)-1]
	}

	if !playlistIDPattern.MatchString(s) {
		return "", errors.Newf("invalid playlist ID %q", s)
	}
	return s, nil
}

var playlistIDPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)
