// Package spotify provides read access to the parts of the Spotify Web API
// the pipeline needs: playlist items, artist details and album details.
//
// # Playlist Tracks
//
// Catalog pages through a playlist's items:
//
//	catalog := spotify.NewCatalog(client, 100)
//	items, err := catalog.PlaylistTracks(ctx, playlistID)
//
// # Lookups
//
// Artist and album details are fetched one ID at a time. Cache keeps them
// for the rest of the run so every ID is requested at most once:
//
//	cache := spotify.NewCache()
//	if artist, ok := cache.Artist(id); !ok {
//	    artist, err = catalog.Artist(ctx, id)
//	    cache.PutArtist(id, artist)
//	}
//
// # Data Format
//
// Response bodies are decoded into the types of the dto subpackage
// (playlist pages) or directly into model.RawArtist / model.RawAlbum, which
// are persisted unchanged in the raw bundle file.
package spotify
