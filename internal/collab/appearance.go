package collab

import (
	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/transform"
)

// ArtistRef identifies an artist credited on a track.
type ArtistRef struct {
	Key  string
	Name string
}

// Appearance is one track with its credited artists, in credit order.
type Appearance struct {
	TrackID    string
	Popularity *float64
	Artists    []ArtistRef
}

// FromWide builds appearances from the wide table, keying artists by the
// names in its artists column. Empty names are ordinary keys.
func FromWide(rows []model.WideRow) []Appearance {
	apps := make([]Appearance, 0, len(rows))
	for _, r := range rows {
		names := r.ArtistNames()
		refs := make([]ArtistRef, len(names))
		for i, n := range names {
			refs[i] = ArtistRef{Key: n, Name: n}
		}
		apps = append(apps, Appearance{
			TrackID:    r.TrackID,
			Popularity: toFloat(r.Popularity),
			Artists:    refs,
		})
	}
	return apps
}

// FromTables builds appearances from the relational tables, keying artists
// by ID and labeling them with their names.
func FromTables(t *transform.Tables) []Appearance {
	names := make(map[string]string, len(t.Artists))
	for _, a := range t.Artists {
		names[a.ID] = a.Name
	}
	credits := make(map[string][]ArtistRef)
	for _, l := range t.Links {
		credits[l.TrackID] = append(credits[l.TrackID], ArtistRef{Key: l.ArtistID, Name: names[l.ArtistID]})
	}

	apps := make([]Appearance, 0, len(t.Tracks))
	for _, tr := range t.Tracks {
		apps = append(apps, Appearance{
			TrackID:    tr.ID,
			Popularity: toFloat(tr.Popularity),
			Artists:    credits[tr.ID],
		})
	}
	return apps
}

func toFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// Build constructs the collaboration graph.
//
// For every appearance with at least two distinct artist keys, each
// unordered pair of keys gets its edge weight incremented by one. The
// result does not depend on the order of apps. With includeSolo, artists
// without any collaboration are added as isolated nodes.
func Build(apps []Appearance, includeSolo bool) *Graph {
	g := NewGraph()
	for _, app := range apps {
		refs := distinctArtists(app.Artists)
		if len(refs) < 2 {
			if includeSolo {
				for _, r := range refs {
					g.AddNode(r.Key, r.Name)
				}
			}
			continue
		}

		for _, r := range refs {
			g.AddNode(r.Key, r.Name)
		}
		for i := 0; i < len(refs); i++ {
			for j := i + 1; j < len(refs); j++ {
				g.AddEdge(refs[i].Key, refs[j].Key)
			}
		}
	}
	return g
}

// distinctArtists drops repeated keys, keeping the first credit.
func distinctArtists(refs []ArtistRef) []ArtistRef {
	seen := make(map[string]bool, len(refs))
	out := make([]ArtistRef, 0, len(refs))
	for _, r := range refs {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		out = append(out, r)
	}
	return out
}
