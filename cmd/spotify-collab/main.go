package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/logger"
	"github.com/billycemerson/Spotify-Collab/internal/pipeline"
	"github.com/billycemerson/Spotify-Collab/internal/spotify"
)

// Global flags
var (
	configFlag  string
	verboseFlag bool
	jsonFlag    bool

	playlistFlag string
	dataFlag     string
	resultsFlag  string

	nodeKeyFlag     string
	weightedFlag    bool
	includeSoloFlag bool
	skipFetchFlag   bool
)

var log = zap.NewNop().Sugar()

var rootCmd = &cobra.Command{
	Use:   "spotify-collab",
	Short: "Artist collaboration networks from a Spotify playlist",
	Long: `spotify-collab fetches a Spotify playlist, normalizes it into CSV tables,
builds the artist collaboration graph and renders charts of the result.

Each stage reads the files the previous one wrote, so stages can be re-run
on their own.

Examples:
  spotify-collab run                       # Run every stage
  spotify-collab run --skip-fetch          # Rebuild from data/ without the API
  spotify-collab fetch --playlist <id>     # Fetch another playlist
  spotify-collab collab --node-key name    # Merge artists by display name

For interactive mode, use: spotify-collab-tui`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(logger.Options{JSON: jsonFlag, Verbose: verboseFlag})
	},
}

func stageCmd(stage pipeline.Stage, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(stage),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd)
			if err != nil {
				return err
			}
			return runner.Run(cmd.Context(), stage)
		},
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every pipeline stage in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}
		if !skipFetchFlag {
			return runner.All(cmd.Context())
		}
		for _, stage := range pipeline.Stages()[1:] {
			if err := runner.Run(cmd.Context(), stage); err != nil {
				return errors.Wrapf(err, "%s stage", stage)
			}
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configFlag); err == nil {
			return errors.Newf("%s already exists", configFlag)
		}
		if err := config.DefaultSettings().Save(configFlag); err != nil {
			return errors.Wrapf(err, "writing %s", configFlag)
		}
		log.Infow("Wrote default settings", "path", configFlag)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "config.json", "Path to config file")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Show verbose output")
	flags.BoolVar(&jsonFlag, "json", false, "Log JSON lines instead of console output")
	flags.StringVar(&playlistFlag, "playlist", "", "Playlist ID or link (overrides config)")
	flags.StringVar(&dataFlag, "data", "", "Data directory (overrides config)")
	flags.StringVar(&resultsFlag, "results", "", "Results directory (overrides config)")
	flags.StringVar(&nodeKeyFlag, "node-key", "", "Graph node identity: id or name (overrides config)")
	flags.BoolVar(&weightedFlag, "weighted", false, "Use edge weights for betweenness and eigenvector centrality")
	flags.BoolVar(&includeSoloFlag, "include-solo", false, "Keep artists without collaborations as isolated nodes")

	runCmd.Flags().BoolVar(&skipFetchFlag, "skip-fetch", false, "Start from the raw file already on disk")

	rootCmd.AddCommand(
		stageCmd(pipeline.StageFetch, "Fetch the playlist with artist and album details"),
		stageCmd(pipeline.StageTransform, "Normalize raw bundles into CSV tables"),
		stageCmd(pipeline.StageCollab, "Build the collaboration graph, metrics and renders"),
		stageCmd(pipeline.StageAnalyze, "Write descriptive charts and the summary"),
		runCmd,
		initCmd,
	)
}

// newRunner loads settings and applies flag overrides.
func newRunner(cmd *cobra.Command) (*pipeline.Runner, error) {
	settings, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if err := settings.LoadEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if playlistFlag != "" {
		id, err := spotify.ParsePlaylistID(playlistFlag)
		if err != nil {
			return nil, err
		}
		settings.PlaylistID = id
	}
	if dataFlag != "" {
		settings.DataPath = dataFlag
	}
	if resultsFlag != "" {
		settings.ResultsPath = resultsFlag
	}
	if nodeKeyFlag != "" {
		settings.NodeKey = nodeKeyFlag
	}
	if flags.Changed("weighted") {
		settings.WeightedCentrality = weightedFlag
	}
	if flags.Changed("include-solo") {
		settings.IncludeSoloArtists = includeSoloFlag
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	log.Debugw("Settings loaded", "config", configFlag, "playlist", settings.PlaylistID,
		"data", settings.DataPath, "results", settings.ResultsPath, "node_key", settings.NodeKey)
	return pipeline.NewRunner(settings, logger.Progress(log)), nil
}

func main() {
	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = log.Sync()
	if err == nil {
		return
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(1)
}
