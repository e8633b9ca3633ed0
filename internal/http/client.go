package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// Default Spotify endpoints.
const (
	DefaultAPIBaseURL = "https://api.spotify.com/v1"
	DefaultTokenURL   = "https://accounts.spotify.com/api/token"
)

// ErrRateLimited is returned when a request is still answered with
// HTTP 429 after all automatic retries.
var ErrRateLimited = errors.New("rate limited by upstream API")

// Config holds the client settings.
type Config struct {
	// APIBaseURL is prepended to every request path.
	APIBaseURL string

	// TokenURL is the OAuth2 client-credentials token endpoint.
	TokenURL string

	// ClientID and ClientSecret are the application credentials.
	ClientID     string
	ClientSecret string

	// Timeout bounds every single HTTP exchange.
	Timeout time.Duration

	// RequestDelay is the fixed minimum spacing between two requests.
	// Zero disables the delay.
	RequestDelay time.Duration

	// MaxRateLimitRetries is how many times a request answered with 429 is
	// retried after sleeping for the server-specified interval.
	MaxRateLimitRetries int

	// OnRateLimit, if set, is called before every rate-limit sleep.
	OnRateLimit func(path string, wait time.Duration)
}

// Client wraps HTTP operations against the Spotify Web API.
//
// Client provides:
//   - OAuth2 client-credentials authentication with token reuse/refresh
//   - A fixed delay between consecutive requests
//   - Bounded sleep-and-retry on HTTP 429 using the Retry-After header
//   - JSON decoding of response bodies
//
// Requests are sequential; Client is not meant to be shared by goroutines
// that expect parallel fetching.
//
// Example usage:
//
//	client := NewClient(ctx, Config{
//	    APIBaseURL:          DefaultAPIBaseURL,
//	    TokenURL:            DefaultTokenURL,
//	    ClientID:            os.Getenv("CLIENT_ID"),
//	    ClientSecret:        os.Getenv("CLIENT_SECRET"),
//	    Timeout:             30 * time.Second,
//	    RequestDelay:        100 * time.Millisecond,
//	    MaxRateLimitRetries: 1,
//	})
//
//	var artist model.RawArtist
//	err := client.Get(ctx, "/artists/0TnOYISbd1XYRBk9myaseg", nil, &artist)
type Client struct {
	rest        *resty.Client
	tokens      oauth2.TokenSource
	limiter     *rate.Limiter
	maxRetries  int
	onRateLimit func(path string, wait time.Duration)
}

// NewClient creates a new client configured for the Spotify Web API.
//
// The context is used by the token source for token exchanges; it should
// live as long as the client.
func NewClient(ctx context.Context, cfg Config) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}

	return &Client{
		rest: resty.New().
			SetBaseURL(cfg.APIBaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "Spotify-Collab"),
		tokens:      creds.TokenSource(ctx),
		limiter:     rate.NewLimiter(limit, 1),
		maxRetries:  cfg.MaxRateLimitRetries,
		onRateLimit: cfg.OnRateLimit,
	}
}

// Get performs an authenticated GET request and decodes the JSON body into out.
//
// Returns an error if:
//   - The access token cannot be obtained
//   - The request fails
//   - The response is still 429 after MaxRateLimitRetries retries (wraps ErrRateLimited)
//   - The response status is any other non-2xx
//   - The body is not valid JSON for out
//
// Example:
//
//	var page dto.JSONPlaylistPage
//	err := client.Get(ctx, "/playlists/"+id+"/tracks", map[string]string{"limit": "100"}, &page)
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out any) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		token, err := c.tokens.Token()
		if err != nil {
			return errors.Wrap(err, "fetch access token")
		}

		resp, err := c.rest.R().
			SetContext(ctx).
			SetAuthToken(token.AccessToken).
			SetQueryParams(params).
			Get(path)
		if err != nil {
			return errors.Wrapf(err, "GET %s", path)
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			if attempt >= c.maxRetries {
				return errors.Wrapf(ErrRateLimited, "GET %s after %d retries", path, attempt)
			}
			wait := retryAfter(resp.Header().Get("Retry-After"))
			if c.onRateLimit != nil {
				c.onRateLimit(path, wait)
			}
			if err := sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if resp.IsError() {
			return errors.Newf("GET %s: HTTP %d: %s", path, resp.StatusCode(), resp.Status())
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return errors.Wrapf(err, "decode response of GET %s", path)
		}
		return nil
	}
}

// retryAfter parses a Retry-After header given in seconds.
// A missing or malformed value falls back to one second.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return time.Second
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
