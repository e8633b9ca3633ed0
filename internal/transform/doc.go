// Package transform provides the normalization stage: it flattens the raw
// bundles written by the fetch stage into relational tables and a
// denormalized wide table.
//
// # Output Tables
//
//	tracks.csv          track_id, track_name, duration_ms, popularity, album_id, is_collab
//	albums.csv          album_id, album_name, album_type, release_date, total_tracks, url
//	artists.csv         artist_id, name, popularity, followers, genres, url
//	track_artists.csv   track_id, artist_id
//	spotify_big_table.csv
//	                    the track columns, the album columns and "artists"
//
// Missing numbers are written as empty cells.
//
// # Basic Usage
//
//	bundles, err := transform.LoadBundles(paths.RawFile(playlistID))
//	if err != nil {
//	    return err
//	}
//	tables := transform.Normalize(bundles)
//	err = tables.Save(paths)
//
// Later stages read the tables back with ReadTables and ReadWide.
package transform
