package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Fixed file names of the tables and analysis outputs.
const (
	TracksFile       = "tracks.csv"
	AlbumsFile       = "albums.csv"
	ArtistsFile      = "artists.csv"
	TrackArtistsFile = "track_artists.csv"
	WideTableFile    = "spotify_big_table.csv"

	MetricsFile      = "artist_network_metrics.csv"
	GraphExportFile  = "collaboration_graph.json"
	NetworkImageFile = "collaboration_network_labeled.png"
	SummaryFile      = "summary.json"
)

// PathConfig holds the directory layout of a pipeline run.
//
// RawFileNameFormat supports the {playlist} placeholder, which is replaced
// with the sanitized playlist ID.
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    DataPath:          "data",
//	    ResultsPath:       "results",
//	    RawFileNameFormat: "{playlist}_tracks.json",
//	}
//	cfg.RawFile("7KHJBz12xG3fPKErBd41K9") // "data/7KHJBz12xG3fPKErBd41K9_tracks.json"
type PathConfig struct {
	// DataPath is where the raw JSON and the normalized tables live.
	DataPath string

	// ResultsPath is where metrics, charts and network renderings go.
	ResultsPath string

	// RawFileNameFormat is the template for the raw bundle file name.
	RawFileNameFormat string
}

// RawFile returns the path of the raw bundle document for a playlist.
func (c *PathConfig) RawFile(playlistID string) string {
	name := strings.ReplaceAll(c.RawFileNameFormat, "{playlist}", playlistID)
	return filepath.Join(c.DataPath, sanitizeFileName(name))
}

// DataFile returns the path of a file in the data directory.
func (c *PathConfig) DataFile(name string) string {
	return filepath.Join(c.DataPath, name)
}

// ResultFile returns the path of a file in the results directory.
func (c *PathConfig) ResultFile(name string) string {
	return filepath.Join(c.ResultsPath, name)
}

// CommunityDir returns the output directory for big or small communities:
// results/community/big or results/community/small.
func (c *PathConfig) CommunityDir(big bool) string {
	bucket := "small"
	if big {
		bucket = "big"
	}
	return filepath.Join(c.ResultsPath, "community", bucket)
}

// CommunityFile returns the rendering path of the index-th community.
func (c *PathConfig) CommunityFile(big bool, index int) string {
	return filepath.Join(c.CommunityDir(big), fmt.Sprintf("community_%d.png", index))
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Top 50: 2025/ID") // Returns "Top 50_ 2025_ID"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
