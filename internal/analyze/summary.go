package analyze

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/billycemerson/Spotify-Collab/internal/model"
)

// HistogramBins is the number of bins of the popularity histogram.
const HistogramBins = 20

// TopArtistCount is the length of the top artist ranking.
const TopArtistCount = 10

// Group is the mean popularity of the tracks sharing a label.
type Group struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean_popularity"`
	Count int     `json:"tracks"`
}

// YearMean is the mean popularity of the tracks released in one year.
type YearMean struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean_popularity"`
	Count int     `json:"tracks"`
}

// Histogram holds bin edges and counts; len(Edges) == len(Counts)+1.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []float64 `json:"counts"`
}

// DurationStats summarizes the duration against popularity scatter.
type DurationStats struct {
	Points []DurationPoint `json:"-"`
	Count  int             `json:"points"`

	// Correlation is Pearson's r, nil with fewer than two points or when
	// either variable is constant.
	Correlation *float64 `json:"pearson_correlation"`
}

// DurationPoint is one track in the duration scatter.
type DurationPoint struct {
	Minutes    float64
	Popularity float64
}

// Summary holds every aggregate of the descriptive analysis.
//
// Tracks without popularity are left out of all popularity aggregates.
type Summary struct {
	Tracks         int     `json:"tracks"`
	RatedTracks    int     `json:"tracks_with_popularity"`
	MeanPopularity float64 `json:"mean_popularity"`
	StdPopularity  float64 `json:"std_popularity"`

	Distribution Histogram     `json:"popularity_distribution"`
	Collab       []Group       `json:"collab_vs_noncollab"`
	AlbumTypes   []Group       `json:"album_types"`
	TopArtists   []Group       `json:"top_artists"`
	ByYear       []YearMean    `json:"popularity_by_year"`
	Duration     DurationStats `json:"duration_vs_popularity"`
}

// Summarize computes the descriptive statistics of the wide table.
func Summarize(rows []model.WideRow) *Summary {
	s := &Summary{Tracks: len(rows)}

	var pops []float64
	collab := newGrouper()
	albumTypes := newGrouper()
	artists := newGrouper()
	years := make(map[int]*acc)

	for _, r := range rows {
		if r.Popularity == nil {
			continue
		}
		p := float64(*r.Popularity)
		pops = append(pops, p)

		if r.IsCollab {
			collab.add("Collab", p)
		} else {
			collab.add("Non-Collab", p)
		}
		if r.AlbumType != "" {
			albumTypes.add(r.AlbumType, p)
		}
		if main := r.MainArtist(); main != "" {
			artists.add(main, p)
		}
		if year, ok := model.ReleaseYear(r.ReleaseDate); ok {
			if years[year] == nil {
				years[year] = &acc{}
			}
			years[year].add(p)
		}
		if r.DurationMS != nil {
			s.Duration.Points = append(s.Duration.Points, DurationPoint{
				Minutes:    float64(*r.DurationMS) / 60000,
				Popularity: p,
			})
		}
	}

	s.RatedTracks = len(pops)
	if len(pops) > 0 {
		s.MeanPopularity, s.StdPopularity = stat.MeanStdDev(pops, nil)
		if math.IsNaN(s.StdPopularity) {
			s.StdPopularity = 0
		}
	}
	s.Distribution = histogram(pops, HistogramBins)

	s.Collab = collabGroups(collab)
	s.AlbumTypes = albumTypes.groups()
	sort.Slice(s.AlbumTypes, func(i, j int) bool { return s.AlbumTypes[i].Label < s.AlbumTypes[j].Label })

	s.TopArtists = artists.groups()
	sort.Slice(s.TopArtists, func(i, j int) bool {
		a, b := s.TopArtists[i], s.TopArtists[j]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Label < b.Label
	})
	if len(s.TopArtists) > TopArtistCount {
		s.TopArtists = s.TopArtists[:TopArtistCount]
	}

	for year, a := range years {
		s.ByYear = append(s.ByYear, YearMean{Year: year, Mean: a.mean(), Count: a.n})
	}
	sort.Slice(s.ByYear, func(i, j int) bool { return s.ByYear[i].Year < s.ByYear[j].Year })

	s.Duration.Count = len(s.Duration.Points)
	s.Duration.Correlation = correlation(s.Duration.Points)
	return s
}

// collabGroups orders the collaboration groups non-collab first.
func collabGroups(g *grouper) []Group {
	var out []Group
	for _, label := range []string{"Non-Collab", "Collab"} {
		if a, ok := g.accs[label]; ok {
			out = append(out, Group{Label: label, Mean: a.mean(), Count: a.n})
		}
	}
	return out
}

// histogram bins values into n equal-width bins spanning their range. The
// last bin is closed so the maximum is counted.
func histogram(values []float64, n int) Histogram {
	if len(values) == 0 {
		return Histogram{}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)
	// stat.Histogram treats the last divider as exclusive.
	dividers := append([]float64(nil), edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	counts := stat.Histogram(nil, dividers, sorted, nil)
	return Histogram{Edges: edges, Counts: counts}
}

func correlation(points []DurationPoint) *float64 {
	if len(points) < 2 {
		return nil
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Minutes, p.Popularity
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return &r
}

type acc struct {
	sum float64
	n   int
}

func (a *acc) add(v float64) {
	a.sum += v
	a.n++
}

func (a *acc) mean() float64 {
	return a.sum / float64(a.n)
}

type grouper struct {
	accs map[string]*acc
}

func newGrouper() *grouper {
	return &grouper{accs: make(map[string]*acc)}
}

func (g *grouper) add(label string, v float64) {
	a, ok := g.accs[label]
	if !ok {
		a = &acc{}
		g.accs[label] = a
	}
	a.add(v)
}

func (g *grouper) groups() []Group {
	out := make([]Group, 0, len(g.accs))
	for label, a := range g.accs {
		out = append(out, Group{Label: label, Mean: a.mean(), Count: a.n})
	}
	return out
}
