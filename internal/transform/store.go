package transform

import (
	"github.com/cockroachdb/errors"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
	"github.com/billycemerson/Spotify-Collab/internal/model"
)

// Column layouts of the persisted tables.
var (
	trackColumns  = []string{"track_id", "track_name", "duration_ms", "popularity", "album_id", "is_collab"}
	albumColumns  = []string{"album_id", "album_name", "album_type", "release_date", "total_tracks", "url"}
	artistColumns = []string{"artist_id", "name", "popularity", "followers", "genres", "url"}
	linkColumns   = []string{"track_id", "artist_id"}
	wideColumns   = []string{
		"track_id", "track_name", "duration_ms", "popularity", "album_id", "is_collab",
		"album_name", "album_type", "release_date", "total_tracks", "url", "artists",
	}
)

// LoadBundles reads the raw bundle document written by the fetch stage.
func LoadBundles(path string) ([]model.Bundle, error) {
	var bundles []model.Bundle
	if err := ioutils.ReadJSON(path, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

// Save writes the four relational tables and the wide table into the data
// directory of paths.
func (t *Tables) Save(paths *model.PathConfig) error {
	writes := []struct {
		name  string
		table *ioutils.Table
	}{
		{model.TracksFile, t.tracksTable()},
		{model.AlbumsFile, t.albumsTable()},
		{model.ArtistsFile, t.artistsTable()},
		{model.TrackArtistsFile, t.linksTable()},
		{model.WideTableFile, WideTable(t.Wide())},
	}

	for _, w := range writes {
		if err := ioutils.WriteCSV(paths.DataFile(w.name), w.table); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tables) tracksTable() *ioutils.Table {
	table := &ioutils.Table{Header: trackColumns}
	for _, tr := range t.Tracks {
		table.Rows = append(table.Rows, []string{
			tr.ID, tr.Name, ioutils.FormatInt(tr.DurationMS), ioutils.FormatInt(tr.Popularity),
			tr.AlbumID, formatBool(tr.IsCollab),
		})
	}
	return table
}

func (t *Tables) albumsTable() *ioutils.Table {
	table := &ioutils.Table{Header: albumColumns}
	for _, a := range t.Albums {
		table.Rows = append(table.Rows, []string{
			a.ID, a.Name, a.Type, a.ReleaseDate, ioutils.FormatInt(a.TotalTracks), a.URL,
		})
	}
	return table
}

func (t *Tables) artistsTable() *ioutils.Table {
	table := &ioutils.Table{Header: artistColumns}
	for _, a := range t.Artists {
		table.Rows = append(table.Rows, []string{
			a.ID, a.Name, ioutils.FormatInt(a.Popularity), ioutils.FormatInt(a.Followers),
			ioutils.FormatString(a.Genres), a.URL,
		})
	}
	return table
}

func (t *Tables) linksTable() *ioutils.Table {
	table := &ioutils.Table{Header: linkColumns}
	for _, l := range t.Links {
		table.Rows = append(table.Rows, []string{l.TrackID, l.ArtistID})
	}
	return table
}

// WideTable renders wide rows as a CSV table.
func WideTable(rows []model.WideRow) *ioutils.Table {
	table := &ioutils.Table{Header: wideColumns}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.TrackID, r.TrackName, ioutils.FormatInt(r.DurationMS), ioutils.FormatInt(r.Popularity),
			r.AlbumID, formatBool(r.IsCollab), r.AlbumName, r.AlbumType, r.ReleaseDate,
			ioutils.FormatInt(r.TotalTracks), r.URL, r.Artists,
		})
	}
	return table
}

// formatBool writes booleans the way spreadsheet and dataframe tools do.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReadTables reads the four relational tables from the data directory.
func ReadTables(paths *model.PathConfig) (*Tables, error) {
	t := &Tables{}

	tracks, err := ioutils.ReadCSV(paths.DataFile(model.TracksFile))
	if err != nil {
		return nil, err
	}
	for i, rec := range tracks {
		tr := model.Track{ID: rec["track_id"], Name: rec["track_name"], AlbumID: rec["album_id"]}
		if tr.DurationMS, err = rec.Int("duration_ms"); err != nil {
			return nil, rowError(model.TracksFile, i, err)
		}
		if tr.Popularity, err = rec.Int("popularity"); err != nil {
			return nil, rowError(model.TracksFile, i, err)
		}
		if tr.IsCollab, err = rec.Bool("is_collab"); err != nil {
			return nil, rowError(model.TracksFile, i, err)
		}
		t.Tracks = append(t.Tracks, tr)
	}

	albums, err := ioutils.ReadCSV(paths.DataFile(model.AlbumsFile))
	if err != nil {
		return nil, err
	}
	for i, rec := range albums {
		a := model.Album{
			ID:          rec["album_id"],
			Name:        rec["album_name"],
			Type:        rec["album_type"],
			ReleaseDate: rec["release_date"],
			URL:         rec["url"],
		}
		if a.TotalTracks, err = rec.Int("total_tracks"); err != nil {
			return nil, rowError(model.AlbumsFile, i, err)
		}
		t.Albums = append(t.Albums, a)
	}

	artists, err := ioutils.ReadCSV(paths.DataFile(model.ArtistsFile))
	if err != nil {
		return nil, err
	}
	for i, rec := range artists {
		a := model.Artist{
			ID:     rec["artist_id"],
			Name:   rec["name"],
			Genres: rec.NullableString("genres"),
			URL:    rec["url"],
		}
		if a.Popularity, err = rec.Int("popularity"); err != nil {
			return nil, rowError(model.ArtistsFile, i, err)
		}
		if a.Followers, err = rec.Int("followers"); err != nil {
			return nil, rowError(model.ArtistsFile, i, err)
		}
		t.Artists = append(t.Artists, a)
	}

	links, err := ioutils.ReadCSV(paths.DataFile(model.TrackArtistsFile))
	if err != nil {
		return nil, err
	}
	for _, rec := range links {
		t.Links = append(t.Links, model.TrackArtist{TrackID: rec["track_id"], ArtistID: rec["artist_id"]})
	}

	return t, nil
}

// ReadWide reads the wide table from the data directory.
func ReadWide(paths *model.PathConfig) ([]model.WideRow, error) {
	records, err := ioutils.ReadCSV(paths.DataFile(model.WideTableFile))
	if err != nil {
		return nil, err
	}

	rows := make([]model.WideRow, 0, len(records))
	for i, rec := range records {
		r := model.WideRow{
			TrackID:     rec["track_id"],
			TrackName:   rec["track_name"],
			AlbumID:     rec["album_id"],
			AlbumName:   rec["album_name"],
			AlbumType:   rec["album_type"],
			ReleaseDate: rec["release_date"],
			URL:         rec["url"],
			Artists:     rec["artists"],
		}
		if r.DurationMS, err = rec.Int("duration_ms"); err != nil {
			return nil, rowError(model.WideTableFile, i, err)
		}
		if r.Popularity, err = rec.Int("popularity"); err != nil {
			return nil, rowError(model.WideTableFile, i, err)
		}
		if r.TotalTracks, err = rec.Int("total_tracks"); err != nil {
			return nil, rowError(model.WideTableFile, i, err)
		}
		if r.IsCollab, err = rec.Bool("is_collab"); err != nil {
			return nil, rowError(model.WideTableFile, i, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// rowError reports the 1-based data row (header excluded) that failed.
func rowError(file string, i int, err error) error {
	return errors.Wrapf(err, "%s row %d", file, i+1)
}
