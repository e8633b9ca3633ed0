// Package fetch provides the first pipeline stage: reading a playlist from
// the Spotify Web API and producing one raw bundle per track.
//
// # Manager
//
// The Manager coordinates the fetch:
//
//  1. Read the playlist header (for logging)
//  2. Page through every playlist item
//  3. Resolve each artist and album through a per-run cache
//  4. Derive is_collab and collab_with from the artist names
//
// # Basic Usage
//
//	manager := fetch.NewManager(catalog, func(event progress.Event) {
//	    fmt.Println(event.Message)
//	})
//
//	bundles, err := manager.Run(ctx, "7KHJBz12xG3fPKErBd41K9")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = ioutils.WriteJSON("data/top_tracks.json", bundles)
//
// # Failure Handling
//
// A failed artist or album lookup is reported as a warning and replaced by
// an empty record carrying only the ID. Rate limiting is handled inside the
// HTTP client; cancellation of ctx aborts the run.
package fetch
