package transform

import (
	"sort"
	"strings"

	"github.com/billycemerson/Spotify-Collab/internal/model"
)

// Tables is the relational form of a fetch run.
//
// Rows keep the order in which their keys were first seen in the raw
// bundles. Tracks and albums keep the first record per ID; artists keep the
// last record per ID, since later lookups may have succeeded where earlier
// ones did not. Links are deduplicated on the (track, artist) pair.
type Tables struct {
	Tracks  []model.Track
	Albums  []model.Album
	Artists []model.Artist
	Links   []model.TrackArtist
}

// Normalize flattens raw bundles into relational tables.
//
// Bundles without a track ID are skipped. Artists without an ID cannot be
// keyed and are left out of the artist and link tables, although they still
// count towards the track's collaboration flag.
func Normalize(bundles []model.Bundle) *Tables {
	t := &Tables{}

	seenTracks := make(map[string]bool)
	seenAlbums := make(map[string]bool)
	seenLinks := make(map[model.TrackArtist]bool)
	artistIndex := make(map[string]int)

	for _, b := range bundles {
		if b.TrackID == "" {
			continue
		}

		if !seenTracks[b.TrackID] {
			seenTracks[b.TrackID] = true
			t.Tracks = append(t.Tracks, model.Track{
				ID:         b.TrackID,
				Name:       b.TrackName,
				DurationMS: b.DurationMS,
				Popularity: b.TrackPopularity,
				AlbumID:    b.Album.ID,
				IsCollab:   len(b.Artists) > 1,
			})
		}

		if id := b.Album.ID; id != "" && !seenAlbums[id] {
			seenAlbums[id] = true
			t.Albums = append(t.Albums, albumRow(b.Album))
		}

		for _, a := range b.Artists {
			if a.ID == "" {
				continue
			}

			row := artistRow(a)
			if i, ok := artistIndex[a.ID]; ok {
				t.Artists[i] = row
			} else {
				artistIndex[a.ID] = len(t.Artists)
				t.Artists = append(t.Artists, row)
			}

			link := model.TrackArtist{TrackID: b.TrackID, ArtistID: a.ID}
			if !seenLinks[link] {
				seenLinks[link] = true
				t.Links = append(t.Links, link)
			}
		}
	}

	return t
}

func albumRow(a model.RawAlbum) model.Album {
	return model.Album{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.AlbumType,
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		URL:         a.SpotifyURL(),
	}
}

func artistRow(a model.RawArtist) model.Artist {
	row := model.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Popularity: a.Popularity,
		URL:        a.SpotifyURL(),
	}
	if a.Followers != nil {
		total := a.Followers.Total
		row.Followers = &total
	}
	if a.Genres != nil {
		genres := strings.Join(a.Genres, ",")
		row.Genres = &genres
	}
	return row
}

// Wide joins the tables into the denormalized wide table, one row per
// track, sorted by track ID.
//
// A track whose album is unknown keeps empty album columns. The artists
// column holds the distinct non-empty names of the track's artists,
// sorted and joined with model.ArtistSeparator.
func (t *Tables) Wide() []model.WideRow {
	albums := make(map[string]model.Album, len(t.Albums))
	for _, a := range t.Albums {
		albums[a.ID] = a
	}
	names := make(map[string]string, len(t.Artists))
	for _, a := range t.Artists {
		names[a.ID] = a.Name
	}
	trackArtists := make(map[string][]string)
	for _, l := range t.Links {
		trackArtists[l.TrackID] = append(trackArtists[l.TrackID], l.ArtistID)
	}

	rows := make([]model.WideRow, 0, len(t.Tracks))
	for _, tr := range t.Tracks {
		row := model.WideRow{
			TrackID:    tr.ID,
			TrackName:  tr.Name,
			DurationMS: tr.DurationMS,
			Popularity: tr.Popularity,
			AlbumID:    tr.AlbumID,
			IsCollab:   tr.IsCollab,
		}
		if album, ok := albums[tr.AlbumID]; ok {
			row.AlbumName = album.Name
			row.AlbumType = album.Type
			row.ReleaseDate = album.ReleaseDate
			row.TotalTracks = album.TotalTracks
			row.URL = album.URL
		}
		row.Artists = joinNames(trackArtists[tr.ID], names)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TrackID < rows[j].TrackID
	})
	return rows
}

func joinNames(artistIDs []string, names map[string]string) string {
	set := make(map[string]bool, len(artistIDs))
	distinct := make([]string, 0, len(artistIDs))
	for _, id := range artistIDs {
		name := names[id]
		if name == "" || set[name] {
			continue
		}
		set[name] = true
		distinct = append(distinct, name)
	}
	sort.Strings(distinct)
	return strings.Join(distinct, model.ArtistSeparator)
}
