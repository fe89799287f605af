package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/nvaler/tripscout/internal/config"
	"github.com/nvaler/tripscout/internal/engine/places"
)

func runDetails(args []string) error {
	var (
		placeID string
		verbose bool
	)

	fs := flag.NewFlagSet("details", flag.ExitOnError)
	fs.StringVar(&placeID, "id", "", "Provider place identifier (required)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tripscout details -id <place_id>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if placeID == "" {
		return fmt.Errorf("-id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(verbose)
	client := places.NewClient(cfg.Provider, cfg.APIKey, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	activity, err := client.GetDetails(ctx, placeID)
	if err != nil {
		return fmt.Errorf("fetching details: %w", err)
	}
	if activity == nil {
		fmt.Printf("No details found for %s\n", placeID)
		return nil
	}

	printActivity(activity, 1)
	if len(activity.Photos) > 0 {
		fmt.Printf("Photos: %d\n", len(activity.Photos))
	}
	if len(activity.Reviews) > 0 {
		fmt.Println("\nTop reviews:")
		for _, r := range activity.Reviews {
			rating := "-"
			if r.Rating != nil {
				rating = fmt.Sprintf("%.0f★", *r.Rating)
			}
			fmt.Printf(" - %s (%s)\n", r.Author, rating)
			if text := truncate(r.Text, 100); text != "" {
				fmt.Printf("   %s\n", text)
			}
		}
	}
	return nil
}

// truncate shortens s to at most n runes; review text is routinely
// non-ASCII, so a byte cut could split a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
