// Package model defines the core data structures used throughout
// the Spotify collaboration pipeline.
//
// # Raw bundles
//
// Bundle is what the fetch stage writes: one nested record per playlist
// track, holding the artist and album detail objects:
//
//	var bundles []model.Bundle
//	json.Unmarshal(data, &bundles)
//
// # Tables
//
// Track, Album, Artist and TrackArtist are the rows of the four relational
// tables. WideRow is the denormalized join of all four:
//
//	row.ArtistNames() // []string{"Bob", "Carol"}
//	row.MainArtist()  // "Bob"
//
// # Path Configuration
//
// PathConfig resolves where each stage reads and writes:
//
//	cfg := &model.PathConfig{
//	    DataPath:          "data",
//	    ResultsPath:       "results",
//	    RawFileNameFormat: "{playlist}_tracks.json",
//	}
//	cfg.CommunityFile(true, 3) // "results/community/big/community_3.png"
//
// Available placeholders: {playlist}
package model
