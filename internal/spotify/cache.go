package spotify

import "github.com/billycemerson/Spotify-Collab/internal/model"

// Cache remembers artist and album lookups by ID for the duration of one
// fetch run. Entries are never evicted; the cache is discarded with the run.
//
// Failed lookups are stored too (as empty records) so a missing entity is
// requested only once.
type Cache struct {
	artists map[string]model.RawArtist
	albums  map[string]model.RawAlbum
	hits    int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		artists: make(map[string]model.RawArtist),
		albums:  make(map[string]model.RawAlbum),
	}
}

// Artist returns a cached artist.
func (c *Cache) Artist(id string) (model.RawArtist, bool) {
	a, ok := c.artists[id]
	if ok {
		c.hits++
	}
	return a, ok
}

// PutArtist stores an artist.
func (c *Cache) PutArtist(id string, a model.RawArtist) {
	c.artists[id] = a
}

// Album returns a cached album.
func (c *Cache) Album(id string) (model.RawAlbum, bool) {
	a, ok := c.albums[id]
	if ok {
		c.hits++
	}
	return a, ok
}

// PutAlbum stores an album.
func (c *Cache) PutAlbum(id string, a model.RawAlbum) {
	c.albums[id] = a
}

// Stats returns the number of cached artists and albums and the number of
// lookups served from the cache.
func (c *Cache) Stats() (artists, albums, hits int) {
	return len(c.artists), len(c.albums), c.hits
}
