package model

// Artist is one row of the normalized artists table.
//
// Genres holds the artist's genre labels joined with ",". It is nil when
// the upstream record had no genre list at all (for example when the
// artist lookup failed), and an empty string when the list was empty.
type Artist struct {
	ID         string  `json:"artist_id"`
	Name       string  `json:"name"`
	Popularity *int    `json:"popularity"`
	Followers  *int    `json:"followers"`
	Genres     *string `json:"genres"`
	URL        string  `json:"url"`
}
