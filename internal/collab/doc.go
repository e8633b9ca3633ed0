// Package collab builds the artist collaboration network and derives the
// network analysis from it.
//
// # Graph
//
// Every track credited to two or more artists links each pair of them.
// The edge weight counts the distinct tracks a pair shares:
//
//	apps := collab.FromTables(tables)   // nodes keyed by artist ID
//	apps = collab.FromWide(rows)        // or by display name
//	g := collab.Build(apps, false)
//
// # Metrics
//
// Analyze computes degree, betweenness and eigenvector centrality and the
// average track popularity per artist, attaches them to the graph and
// returns them as a table:
//
//	table, eigen := collab.Analyze(g, apps, collab.DefaultConfig())
//	if eigen.Method == collab.EigenUnavailable {
//	    // every eigenvector value is written as "unavailable"
//	}
//	err := table.WriteCSV("results/artist_network_metrics.csv")
//
// Eigenvector centrality is computed by power iteration first and by a
// direct eigendecomposition if that does not converge. If neither works the
// values are marked unavailable; the analysis itself never fails.
//
// # Communities
//
// Communities are the connected components of the graph, largest first.
// A community with at least RenderConfig.CommunityThreshold members is
// "big". RenderNetwork and RenderCommunities draw spring layouts of the
// whole graph and of each community.
package collab
