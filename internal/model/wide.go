package model

import "strings"

// ArtistSeparator joins artist names in the wide table's artists column.
const ArtistSeparator = ", "

// WideRow is one row of the denormalized wide table: a track joined with
// its album and the names of all its artists.
//
// Artists holds the track's artist names deduplicated, sorted and joined
// with ArtistSeparator.
type WideRow struct {
	TrackID     string `json:"track_id"`
	TrackName   string `json:"track_name"`
	DurationMS  *int   `json:"duration_ms"`
	Popularity  *int   `json:"popularity"`
	AlbumID     string `json:"album_id"`
	IsCollab    bool   `json:"is_collab"`
	AlbumName   string `json:"album_name"`
	AlbumType   string `json:"album_type"`
	ReleaseDate string `json:"release_date"`
	TotalTracks *int   `json:"total_tracks"`
	URL         string `json:"url"`
	Artists     string `json:"artists"`
}

// ArtistNames splits the artists column back into names.
//
// Every comma-separated token is trimmed and kept, including empty ones:
// an empty artists column yields a single empty name.
func (r WideRow) ArtistNames() []string {
	parts := strings.Split(r.Artists, ",")
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = strings.TrimSpace(part)
	}
	return names
}

// MainArtist returns the first name of the artists column.
func (r WideRow) MainArtist() string {
	return r.ArtistNames()[0]
}
