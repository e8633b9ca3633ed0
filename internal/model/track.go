package model

// Track is one row of the normalized tracks table.
//
// DurationMS and Popularity are nil when the upstream record did not carry
// them. IsCollab is true when the track lists more than one artist.
//
// Example:
//
//	pop := 72
//	track := Track{ID: "3n3Ppam7vgaVa1iaRUc9Lp", Name: "Mr. Brightside", Popularity: &pop}
type Track struct {
	// ID is the Spotify track ID and the table's primary key.
	ID string `json:"track_id"`

	// Name is the track title.
	Name string `json:"track_name"`

	// DurationMS is the track length in milliseconds.
	DurationMS *int `json:"duration_ms"`

	// Popularity is Spotify's 0-100 popularity score.
	Popularity *int `json:"popularity"`

	// AlbumID references the owning album. Empty if unknown.
	AlbumID string `json:"album_id"`

	// IsCollab reports whether more than one artist is credited.
	IsCollab bool `json:"is_collab"`
}

// TrackArtist links a track to one of its credited artists.
type TrackArtist struct {
	TrackID  string `json:"track_id"`
	ArtistID string `json:"artist_id"`
}
