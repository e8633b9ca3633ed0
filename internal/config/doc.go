// Package config provides configuration management for the Spotify
// collaboration pipeline.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Reading Spotify credentials from the environment or a .env file
//   - Conversion to the configuration types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Fetches the Top 50 - Global playlist
//	// Writes tables to data/ and analysis output to results/
//	// Communities of 10 or more artists are "big"
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Credentials
//
// CLIENT_ID and CLIENT_SECRET are never stored in the settings file:
//
//	if err := settings.LoadEnv(); err != nil {
//	    return err
//	}
//	if err := settings.RequireCredentials(); err != nil {
//	    return err // errors.Is(err, config.ErrMissingCredentials)
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Playlist selection and API pagination
//   - Request spacing and rate-limit retries
//   - Data and results directories
//   - Graph node identity and centrality weighting
//   - Community classification, labels and layout
package config
