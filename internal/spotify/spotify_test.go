package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/spotify/dto"
)

// fakeGetter serves canned JSON keyed by path and records calls.
type fakeGetter struct {
	total int
	pages map[int]string
	docs  map[string]string
	calls []string
}

func (f *fakeGetter) Get(_ context.Context, path string, params map[string]string, out any) error {
	f.calls = append(f.calls, path+"?offset="+params["offset"])
	if doc, ok := f.docs[path]; ok {
		return json.Unmarshal([]byte(doc), out)
	}
	if f.pages != nil {
		offset, _ := strconv.Atoi(params["offset"])
		body, ok := f.pages[offset]
		if !ok {
			body = fmt.Sprintf(`{"items":[],"total":%d}`, f.total)
		}
		return json.Unmarshal([]byte(body), out)
	}
	return errors.New("not found")
}

func page(total int, ids ...string) string {
	items := make([]dto.JSONPlaylistItem, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		items[i].Track = &dto.JSONTrack{ID: id, Name: "Track " + id}
	}
	data, _ := json.Marshal(dto.JSONPlaylistPage{Items: items, Total: total})
	return string(data)
}

func TestCatalog_PlaylistTracks(t *testing.T) {
	tests := []struct {
		name      string
		pageSize  int
		total     int
		pages     map[int]string
		wantItems int
		wantCalls int
	}{
		{
			name:      "single page",
			pageSize:  100,
			total:     2,
			pages:     map[int]string{0: page(2, "a", "b")},
			wantItems: 2,
			wantCalls: 1,
		},
		{
			name:     "stops at total",
			pageSize: 2,
			total:    4,
			pages: map[int]string{
				0: page(4, "a", "b"),
				2: page(4, "c", "d"),
			},
			wantItems: 4,
			wantCalls: 2,
		},
		{
			name:     "stops at empty page",
			pageSize: 2,
			total:    10,
			pages: map[int]string{
				0: page(10, "a", "b"),
			},
			wantItems: 2,
			wantCalls: 2,
		},
		{
			name:      "null tracks are kept as items",
			pageSize:  100,
			total:     3,
			pages:     map[int]string{0: page(3, "a", "", "c")},
			wantItems: 3,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := &fakeGetter{total: tt.total, pages: tt.pages}
			catalog := NewCatalog(getter, tt.pageSize)

			items, err := catalog.PlaylistTracks(context.Background(), "pl")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantItems {
				t.Errorf("got %d items, want %d", len(items), tt.wantItems)
			}
			if len(getter.calls) != tt.wantCalls {
				t.Errorf("got %d calls (%v), want %d", len(getter.calls), getter.calls, tt.wantCalls)
			}
		})
	}
}

func TestCatalog_ArtistAndAlbum(t *testing.T) {
	getter := &fakeGetter{docs: map[string]string{
		"/artists/a1": `{"id":"a1","name":"Alice","popularity":81,"followers":{"total":1200},"genres":["pop","indie pop"],"external_urls":{"spotify":"https://open.spotify.com/artist/a1"}}`,
		"/albums/al1": `{"id":"al1","name":"Debut","album_type":"album","release_date":"2021-03-05","total_tracks":11}`,
	}}
	catalog := NewCatalog(getter, 0)

	artist, err := catalog.Artist(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Artist failed: %v", err)
	}
	if artist.Name != "Alice" || artist.Followers == nil || artist.Followers.Total != 1200 {
		t.Errorf("unexpected artist: %+v", artist)
	}
	if artist.SpotifyURL() != "https://open.spotify.com/artist/a1" {
		t.Errorf("SpotifyURL() = %q", artist.SpotifyURL())
	}

	album, err := catalog.Album(context.Background(), "al1")
	if err != nil {
		t.Fatalf("Album failed: %v", err)
	}
	if album.AlbumType != "album" || album.TotalTracks == nil || *album.TotalTracks != 11 {
		t.Errorf("unexpected album: %+v", album)
	}

	if _, err := catalog.Artist(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown artist")
	}
}

func TestCache(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Artist("a1"); ok {
		t.Fatal("empty cache should miss")
	}

	cache.PutArtist("a1", model.RawArtist{ID: "a1", Name: "Alice"})
	cache.PutAlbum("al1", model.RawAlbum{ID: "al1"})

	a, ok := cache.Artist("a1")
	if !ok || a.Name != "Alice" {
		t.Errorf("Artist(a1) = %+v, %v", a, ok)
	}
	if _, ok := cache.Album("al1"); !ok {
		t.Error("Album(al1) should hit")
	}

	artists, albums, hits := cache.Stats()
	if artists != 1 || albums != 1 || hits != 2 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 2", artists, albums, hits)
	}
}

func TestParsePlaylistID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "7KHJBz12xG3fPKErBd41K9", want: "7KHJBz12xG3fPKErBd41K9"},
		{in: "  7KHJBz12xG3fPKErBd41K9 ", want: "7KHJBz12xG3fPKErBd41K9"},
		{in: "spotify:playlist:37i9dQZEVXbMDoHDwVN2tF", want: "37i9dQZEVXbMDoHDwVN2tF"},
		{in: "https://open.spotify.com/playlist/7KHJBz12xG3fPKErBd41K9?si=abc", want: "7KHJBz12xG3fPKErBd41K9"},
		{in: "https://open.spotify.com/intl-id/playlist/7KHJBz12xG3fPKErBd41K9", want: "7KHJBz12xG3fPKErBd41K9"},
		{in: "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy", wantErr: true},
		{in: "", wantErr: true},
		{in: "bad id!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlaylistID(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePlaylistID(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlaylistID(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlaylistID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
