package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
	"github.com/billycemerson/Spotify-Collab/internal/model"
)

func intPtr(v int) *int { return &v }

func sampleRows() []model.WideRow {
	return []model.WideRow{
		{TrackID: "t1", Popularity: intPtr(80), DurationMS: intPtr(180000), IsCollab: true, AlbumType: "single", ReleaseDate: "2023-05-01", Artists: "Alice, Bob"},
		{TrackID: "t2", Popularity: intPtr(60), DurationMS: intPtr(240000), AlbumType: "album", ReleaseDate: "2023", Artists: "Alice"},
		{TrackID: "t3", Popularity: intPtr(40), DurationMS: intPtr(300000), AlbumType: "album", ReleaseDate: "2021-11", Artists: "Carol"},
		{TrackID: "t4", Popularity: nil, DurationMS: intPtr(200000), AlbumType: "single", ReleaseDate: "2020-01-01", Artists: "Dave"},
		{TrackID: "t5", Popularity: intPtr(100), IsCollab: true, ReleaseDate: "unknown", Artists: "Bob, Carol"},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows())

	assert.Equal(t, 5, s.Tracks)
	assert.Equal(t, 4, s.RatedTracks)
	assert.InDelta(t, 70, s.MeanPopularity, 1e-9)

	assert.Equal(t, []Group{
		{Label: "Non-Collab", Mean: 50, Count: 2},
		{Label: "Collab", Mean: 90, Count: 2},
	}, s.Collab)

	assert.Equal(t, []Group{
		{Label: "album", Mean: 50, Count: 2},
		{Label: "single", Mean: 80, Count: 1},
	}, s.AlbumTypes, "rows without album type and without popularity are skipped")

	require.Len(t, s.TopArtists, 3)
	assert.Equal(t, Group{Label: "Bob", Mean: 100, Count: 1}, s.TopArtists[0])
	assert.Equal(t, Group{Label: "Alice", Mean: 70, Count: 2}, s.TopArtists[1])

	assert.Equal(t, []YearMean{
		{Year: 2021, Mean: 40, Count: 1},
		{Year: 2023, Mean: 70, Count: 2},
	}, s.ByYear)

	assert.Equal(t, 3, s.Duration.Count)
	require.NotNil(t, s.Duration.Correlation)
	assert.InDelta(t, -1, *s.Duration.Correlation, 1e-9, "popularity falls linearly with duration")
}

func TestHistogram(t *testing.T) {
	h := histogram([]float64{0, 50, 100, 100}, 20)
	require.Len(t, h.Edges, 21)
	require.Len(t, h.Counts, 20)
	assert.Equal(t, 0.0, h.Edges[0])
	assert.Equal(t, 100.0, h.Edges[20])
	assert.Equal(t, 1.0, h.Counts[0])
	assert.Equal(t, 1.0, h.Counts[10])
	assert.Equal(t, 2.0, h.Counts[19], "the maximum lands in the last bin")

	flat := histogram([]float64{70, 70}, 20)
	total := 0.0
	for _, c := range flat.Counts {
		total += c
	}
	assert.Equal(t, 2.0, total)

	assert.Empty(t, histogram(nil, 20).Counts)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.RatedTracks)
	assert.Nil(t, s.Duration.Correlation)
	assert.Empty(t, s.TopArtists)
}

func TestReport(t *testing.T) {
	paths := &model.PathConfig{ResultsPath: t.TempDir()}

	s, err := Report(sampleRows(), paths, nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	for _, name := range []string{DistributionFile, CollabFile, AlbumTypeFile, TopArtistsFile, YearFile, DurationFile} {
		assert.FileExists(t, paths.ResultFile(name))
	}

	var loaded map[string]any
	require.NoError(t, ioutils.ReadJSON(paths.ResultFile(model.SummaryFile), &loaded))
	assert.Equal(t, 4.0, loaded["tracks_with_popularity"])
	assert.Contains(t, loaded, "top_artists")
}
