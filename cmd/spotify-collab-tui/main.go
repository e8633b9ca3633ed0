package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/tui"
)

func main() {
	configFlag := flag.String("config", "config.json", "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
