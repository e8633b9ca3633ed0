// Package analyze computes descriptive statistics over the wide table and
// draws the corresponding charts.
//
// Report writes to the results directory:
//
//	popularity_distribution.png   histogram of track popularity (20 bins)
//	collab_vs_noncollab.png       mean popularity with and without features
//	single_vs_album.png           mean popularity per album type
//	top_artists.png               ten main artists with the highest mean
//	popularity_by_year.png        mean popularity per release year
//	duration_vs_popularity.png    track length against popularity
//	summary.json                  all of the above as numbers
//
// The main artist of a track is the first name of its artists column.
// Release dates without a leading four-digit year are skipped in the
// yearly series.
package analyze
