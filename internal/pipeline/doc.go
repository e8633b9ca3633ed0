// Package pipeline wires the stages of the collaboration analysis
// together: fetch, transform, collab and analyze.
//
// Each stage reads the files written by the previous one:
//
//	fetch      Spotify API             -> data/<raw file>.json
//	transform  data/<raw file>.json    -> data/*.csv
//	collab     data/*.csv              -> results/ metrics, graph, renderings
//	analyze    data/spotify_big_table  -> results/ charts, summary.json
package pipeline
