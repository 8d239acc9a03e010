// Command score-gen floods a running stepstats server with synthetic
// score submissions and verifies the duplicate policy and aggregates.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/stepstats/internal/scoregen"
	"github.com/okian/stepstats/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount   = 200
	defaultPlayers = 8
	defaultTimeout = 30 * time.Second
	defaultRunTime = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8090", "Base URL of the service")
		apiKey  = flag.String("key", os.Getenv("STEPSTATS_API_KEY"), "API key of the submitting account (defaults to STEPSTATS_API_KEY)")
		count   = flag.Int("count", defaultCount, "Number of submissions to generate")
		players = flag.Int("players", defaultPlayers, "Number of distinct player GUIDs")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *apiKey == "" {
		os.Stderr.WriteString("an API key is required: pass -key or set STEPSTATS_API_KEY\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTime)
	defer cancel()

	cfg := &scoregen.Config{
		BaseURL: *baseURL,
		APIKey:  *apiKey,
		Count:   *count,
		Players: *players,
		Timeout: *timeout,
		Verbose: *verbose,
	}
	if err := scoregen.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("generator run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
