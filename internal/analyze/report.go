package analyze

import (
	"strconv"

	ioutils "github.com/billycemerson/Spotify-Collab/internal/io"
	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/plot"
	"github.com/billycemerson/Spotify-Collab/internal/progress"
)

// Chart file names in the results directory.
const (
	DistributionFile = "popularity_distribution.png"
	CollabFile       = "collab_vs_noncollab.png"
	AlbumTypeFile    = "single_vs_album.png"
	TopArtistsFile   = "top_artists.png"
	YearFile         = "popularity_by_year.png"
	DurationFile     = "duration_vs_popularity.png"
)

// Report summarizes rows, draws every chart and writes them together with
// summary.json to the results directory.
func Report(rows []model.WideRow, paths *model.PathConfig, onProgress progress.Func) (*Summary, error) {
	s := Summarize(rows)
	onProgress.Emit(progress.LevelInfo, "%d tracks, %d with popularity (mean %.1f)", s.Tracks, s.RatedTracks, s.MeanPopularity)

	charts := []struct {
		file   string
		canvas *plot.Canvas
	}{
		{DistributionFile, plot.Histogram("Popularity Distribution", "Popularity", "Count", s.Distribution.Edges, s.Distribution.Counts)},
		{CollabFile, plot.BarChart("Average Popularity: Collab vs Non-Collab", "Avg Popularity", bars(s.Collab), plot.SkyBlue, plot.Orange)},
		{AlbumTypeFile, plot.BarChart("Average Popularity: Single vs Album", "Avg Popularity", bars(s.AlbumTypes), plot.Green, plot.Purple)},
		{TopArtistsFile, plot.BarChart("Top 10 Artists by Avg Popularity", "Avg Popularity", bars(s.TopArtists), plot.Teal)},
		{YearFile, yearChart(s.ByYear)},
		{DurationFile, durationChart(s.Duration)},
	}

	for _, c := range charts {
		path := paths.ResultFile(c.file)
		if err := c.canvas.SavePNG(path); err != nil {
			return nil, err
		}
		onProgress.Emit(progress.LevelVerbose, "Saved %s", path)
	}

	if err := ioutils.WriteJSON(paths.ResultFile(model.SummaryFile), s); err != nil {
		return nil, err
	}
	if s.Duration.Correlation != nil {
		onProgress.Emit(progress.LevelInfo, "Duration/popularity correlation: %.3f", *s.Duration.Correlation)
	}
	return s, nil
}

func bars(groups []Group) []plot.Bar {
	out := make([]plot.Bar, len(groups))
	for i, g := range groups {
		out[i] = plot.Bar{Label: g.Label, Value: g.Mean}
	}
	return out
}

func yearChart(years []YearMean) *plot.Canvas {
	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i], ys[i] = float64(y.Year), y.Mean
	}
	return plot.LineChart("Average Popularity by Release Year", "Year", "Avg Popularity", xs, ys, plot.Red)
}

func durationChart(d DurationStats) *plot.Canvas {
	xs := make([]float64, len(d.Points))
	ys := make([]float64, len(d.Points))
	for i, p := range d.Points {
		xs[i], ys[i] = p.Minutes, p.Popularity
	}
	title := "Duration vs Popularity"
	if d.Correlation != nil {
		title += " (r = " + strconv.FormatFloat(*d.Correlation, 'f', 2, 64) + ")"
	}
	return plot.ScatterChart(title, "Duration (minutes)", "Popularity", xs, ys, plot.Blue)
}
