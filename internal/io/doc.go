// Package ioutils provides file system and tabular file utilities.
//
// This package contains functions for:
//   - Directory creation
//   - JSON documents (the raw bundle file, the graph export, summaries)
//   - CSV tables (the relational tables, the wide table, the metrics table)
//
// # JSON
//
//	err := ioutils.WriteJSON("data/top_tracks.json", bundles)
//	err = ioutils.ReadJSON("data/top_tracks.json", &bundles)
//
// # CSV
//
//	t := &ioutils.Table{Header: []string{"artist", "degree_centrality"}}
//	t.Rows = append(t.Rows, []string{"Alice", ioutils.FormatFloat(0.5)})
//	err := ioutils.WriteCSV("results/metrics.csv", t)
//
//	records, err := ioutils.ReadCSV("data/tracks.csv")
//	pop, err := records[0].Int("popularity") // nil for an empty cell
//
// Nullable values round-trip through empty cells.
package ioutils
