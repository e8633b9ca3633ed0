package dto

// JSONPlaylist represents the playlist header returned by GET /playlists/{id}
// when restricted with fields=id,name,tracks.total.
type JSONPlaylist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// JSONPlaylistPage represents one page of GET /playlists/{id}/tracks.
type JSONPlaylistPage struct {
	Items  []JSONPlaylistItem `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
	Next   *string            `json:"next"`
}

// JSONPlaylistItem wraps a track in a playlist. Track is nil for items
// that are no longer available.
type JSONPlaylistItem struct {
	AddedAt string     `json:"added_at"`
	Track   *JSONTrack `json:"track"`
}
