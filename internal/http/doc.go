// Package http provides an HTTP client configured for Spotify Web API requests.
//
// The Client in this package handles:
//   - OAuth2 client-credentials token exchange (golang.org/x/oauth2)
//   - A fixed delay between requests (golang.org/x/time/rate)
//   - Sleep-and-retry on HTTP 429, bounded by MaxRateLimitRetries
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(ctx, http.Config{
//	    APIBaseURL:          http.DefaultAPIBaseURL,
//	    TokenURL:            http.DefaultTokenURL,
//	    ClientID:            clientID,
//	    ClientSecret:        clientSecret,
//	    RequestDelay:        100 * time.Millisecond,
//	    MaxRateLimitRetries: 1,
//	})
//
//	var album model.RawAlbum
//	err := client.Get(ctx, "/albums/"+albumID, nil, &album)
//
// # Rate Limiting
//
// A 429 response makes the client sleep for the Retry-After interval and
// try again. When the retries are used up Get returns an error wrapping
// ErrRateLimited:
//
//	if errors.Is(err, http.ErrRateLimited) {
//	    // give up on this entity
//	}
package http
