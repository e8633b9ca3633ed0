package model

import (
	"strconv"
	"strings"
)

// Album is one row of the normalized albums table.
//
// ReleaseDate is kept as the string Spotify returns, whose precision may be
// a year ("2019"), a month ("2019-07") or a day ("2019-07-12").
type Album struct {
	// ID is the Spotify album ID.
	ID string `json:"album_id"`

	// Name is the album title.
	Name string `json:"album_name"`

	// Type is "album", "single" or "compilation".
	Type string `json:"album_type"`

	// ReleaseDate is the upstream release date string.
	ReleaseDate string `json:"release_date"`

	// TotalTracks is the number of tracks on the album, if known.
	TotalTracks *int `json:"total_tracks"`

	// URL is the album's open.spotify.com link.
	URL string `json:"url"`
}

// ReleaseYear extracts the year from ReleaseDate.
//
// Returns false if the date is empty or does not start with a 4-digit year.
//
// Example:
//
//	year, ok := ReleaseYear("2019-07-12") // 2019, true
//	year, ok = ReleaseYear("")            // 0, false
func ReleaseYear(releaseDate string) (int, bool) {
	releaseDate = strings.TrimSpace(releaseDate)
	if len(releaseDate) < 4 {
		return 0, false
	}
	if len(releaseDate) > 4 && releaseDate[4] != '-' {
		return 0, false
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
