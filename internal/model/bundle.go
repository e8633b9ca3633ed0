package model

// Bundle is the raw, nested record persisted by the fetch stage for every
// playlist track. A run writes a JSON array of bundles.
//
// Artists and Album hold the detail objects returned by the artist and
// album endpoints. A lookup that failed is stored as an empty record that
// only carries the ID.
type Bundle struct {
	TrackID         string              `json:"track_id"`
	TrackName       string              `json:"track_name"`
	TrackPopularity *int                `json:"track_popularity"`
	DurationMS      *int                `json:"duration_ms"`
	IsCollab        bool                `json:"is_collab"`
	Artists         []RawArtist         `json:"artists"`
	Album           RawAlbum            `json:"album"`
	CollabWith      map[string][]string `json:"collab_with"`
}

// RawArtist is an artist detail object as returned by GET /artists/{id}.
type RawArtist struct {
	ID           string            `json:"id,omitempty"`
	Name         string            `json:"name,omitempty"`
	Popularity   *int              `json:"popularity,omitempty"`
	Followers    *Followers        `json:"followers,omitempty"`
	Genres       []string          `json:"genres"`
	ExternalURLs map[string]string `json:"external_urls,omitempty"`
	URI          string            `json:"uri,omitempty"`
}

// Followers is the follower block of an artist detail object.
type Followers struct {
	Total int `json:"total"`
}

// RawAlbum is an album detail object as returned by GET /albums/{id}.
type RawAlbum struct {
	ID                   string            `json:"id,omitempty"`
	Name                 string            `json:"name,omitempty"`
	AlbumType            string            `json:"album_type,omitempty"`
	ReleaseDate          string            `json:"release_date,omitempty"`
	ReleaseDatePrecision string            `json:"release_date_precision,omitempty"`
	TotalTracks          *int              `json:"total_tracks,omitempty"`
	ExternalURLs         map[string]string `json:"external_urls,omitempty"`
	URI                  string            `json:"uri,omitempty"`
}

// IsEmpty reports whether the artist record carries nothing beyond its ID,
// which is how failed lookups are stored.
func (a RawArtist) IsEmpty() bool {
	return a.Name == "" && a.Popularity == nil && a.Followers == nil && a.Genres == nil
}

// SpotifyURL returns the open.spotify.com link, or "" if absent.
func (a RawArtist) SpotifyURL() string {
	return a.ExternalURLs["spotify"]
}

// SpotifyURL returns the open.spotify.com link, or "" if absent.
func (a RawAlbum) SpotifyURL() string {
	return a.ExternalURLs["spotify"]
}
