package dto

// JSONTrack represents a (simplified) track object inside a playlist item.
type JSONTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Popularity *int            `json:"popularity"`
	DurationMS *int            `json:"duration_ms"`
	IsLocal    bool            `json:"is_local"`
	Artists    []JSONArtistRef `json:"artists"`
	Album      JSONAlbumRef    `json:"album"`
}

// JSONArtistRef is the simplified artist object embedded in a track.
type JSONArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JSONAlbumRef is the simplified album object embedded in a track.
type JSONAlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
