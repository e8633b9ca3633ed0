package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/billycemerson/Spotify-Collab/internal/collab"
	"github.com/billycemerson/Spotify-Collab/internal/http"
	"github.com/billycemerson/Spotify-Collab/internal/model"
	"github.com/billycemerson/Spotify-Collab/internal/spotify"
)

// Environment variables holding the Spotify application credentials.
const (
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
)

// DefaultPlaylistID is the "Top 50 - Global" playlist.
const DefaultPlaylistID = "7KHJBz12xG3fPKErBd41K9"

// ErrMissingCredentials is returned by RequireCredentials when the client
// ID or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client credentials")

// Settings holds all configuration options.
type Settings struct {
	// Credentials are never written to the settings file.
	ClientID     string `json:"-"`
	ClientSecret string `json:"-"`

	// Fetch settings
	PlaylistID          string `json:"playlist_id"`
	APIBaseURL          string `json:"api_base_url"`
	TokenURL            string `json:"token_url"`
	PageSize            int    `json:"page_size"`
	RequestDelayMS      int    `json:"request_delay_ms"`
	RequestTimeoutSec   int    `json:"request_timeout_seconds"`
	MaxRateLimitRetries int    `json:"max_rate_limit_retries"`

	// File layout
	DataPath          string `json:"data_path"`
	ResultsPath       string `json:"results_path"`
	RawFileNameFormat string `json:"raw_file_name_format"`

	// Graph settings
	NodeKey            string  `json:"node_key"` // id, name
	IncludeSoloArtists bool    `json:"include_solo_artists"`
	WeightedCentrality bool    `json:"weighted_centrality"`
	EigenMaxIter       int     `json:"eigen_max_iter"`
	EigenTolerance     float64 `json:"eigen_tolerance"`

	// Rendering settings
	CommunityThreshold int     `json:"community_threshold"`
	LabelThreshold     float64 `json:"label_threshold"`
	LayoutSeed         uint64  `json:"layout_seed"`
	LayoutK            float64 `json:"layout_k"`
	LayoutIterations   int     `json:"layout_iterations"`
	RenderWorkers      int     `json:"render_workers"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PlaylistID:          DefaultPlaylistID,
		APIBaseURL:          http.DefaultAPIBaseURL,
		TokenURL:            http.DefaultTokenURL,
		PageSize:            spotify.MaxPageSize,
		RequestDelayMS:      100,
		RequestTimeoutSec:   30,
		MaxRateLimitRetries: 1,

		DataPath:          "data",
		ResultsPath:       "results",
		RawFileNameFormat: "top_tracks.json",

		NodeKey:            string(collab.NodeKeyID),
		IncludeSoloArtists: false,
		WeightedCentrality: false,
		EigenMaxIter:       1000,
		EigenTolerance:     1e-6,

		CommunityThreshold: 10,
		LabelThreshold:     50,
		LayoutSeed:         42,
		LayoutK:            0.3,
		LayoutIterations:   50,
		RenderWorkers:      1,
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, errors.Wrapf(err, "reading settings %s", path)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(err, "parsing settings %s", path)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnv fills the credentials from the environment. Files named "env"
// and ".env" in the working directory are loaded first if they exist;
// variables already set in the process environment take precedence.
func (s *Settings) LoadEnv() error {
	for _, name := range []string{"env", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return errors.Wrapf(err, "loading %s", name)
		}
	}

	s.ClientID = os.Getenv(EnvClientID)
	s.ClientSecret = os.Getenv(EnvClientSecret)
	return nil
}

// RequireCredentials reports ErrMissingCredentials if either credential
// is empty. Only the fetch stage needs them.
func (s *Settings) RequireCredentials() error {
	if s.ClientID == "" || s.ClientSecret == "" {
		return errors.WithHintf(ErrMissingCredentials,
			"set %s and %s in the environment or in a .env file", EnvClientID, EnvClientSecret)
	}
	return nil
}

// Validate checks the settings for values no stage can work with.
func (s *Settings) Validate() error {
	switch {
	case s.PageSize <= 0 || s.PageSize > spotify.MaxPageSize:
		return errors.Newf("page_size must be between 1 and %d, got %d", spotify.MaxPageSize, s.PageSize)
	case s.RequestDelayMS < 0:
		return errors.Newf("request_delay_ms must not be negative, got %d", s.RequestDelayMS)
	case s.MaxRateLimitRetries < 0:
		return errors.Newf("max_rate_limit_retries must not be negative, got %d", s.MaxRateLimitRetries)
	case s.CommunityThreshold < 0:
		return errors.Newf("community_threshold must not be negative, got %d", s.CommunityThreshold)
	case s.LabelThreshold < 0:
		return errors.Newf("label_threshold must not be negative, got %g", s.LabelThreshold)
	case s.EigenMaxIter <= 0:
		return errors.Newf("eigen_max_iter must be positive, got %d", s.EigenMaxIter)
	case s.EigenTolerance <= 0:
		return errors.Newf("eigen_tolerance must be positive, got %g", s.EigenTolerance)
	case s.LayoutIterations < 0:
		return errors.Newf("layout_iterations must not be negative, got %d", s.LayoutIterations)
	case s.RenderWorkers < 1:
		return errors.Newf("render_workers must be at least 1, got %d", s.RenderWorkers)
	}

	if _, err := collab.ParseNodeKey(s.NodeKey); err != nil {
		return err
	}
	return nil
}

// ToPaths converts settings to PathConfig.
func (s *Settings) ToPaths() *model.PathConfig {
	return &model.PathConfig{
		DataPath:          s.DataPath,
		ResultsPath:       s.ResultsPath,
		RawFileNameFormat: s.RawFileNameFormat,
	}
}

// ToFetchConfig converts settings to the HTTP client configuration.
func (s *Settings) ToFetchConfig() http.Config {
	return http.Config{
		APIBaseURL:          s.APIBaseURL,
		TokenURL:            s.TokenURL,
		ClientID:            s.ClientID,
		ClientSecret:        s.ClientSecret,
		Timeout:             time.Duration(s.RequestTimeoutSec) * time.Second,
		RequestDelay:        time.Duration(s.RequestDelayMS) * time.Millisecond,
		MaxRateLimitRetries: s.MaxRateLimitRetries,
	}
}

// ToGraphConfig converts settings to the graph and metrics configuration.
// It assumes Validate has passed; an unknown node key falls back to id.
func (s *Settings) ToGraphConfig() collab.Config {
	key, err := collab.ParseNodeKey(s.NodeKey)
	if err != nil {
		key = collab.NodeKeyID
	}
	return collab.Config{
		NodeKey:        key,
		IncludeSolo:    s.IncludeSoloArtists,
		Weighted:       s.WeightedCentrality,
		EigenMaxIter:   s.EigenMaxIter,
		EigenTolerance: s.EigenTolerance,
	}
}

// ToRenderConfig converts settings to the network rendering configuration.
func (s *Settings) ToRenderConfig() collab.RenderConfig {
	return collab.RenderConfig{
		CommunityThreshold: s.CommunityThreshold,
		LabelThreshold:     s.LabelThreshold,
		Layout: collab.LayoutConfig{
			K:          s.LayoutK,
			Iterations: s.LayoutIterations,
			Seed:       s.LayoutSeed,
		},
		Workers: s.RenderWorkers,
	}
}
