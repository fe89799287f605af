package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/config"
	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/places"
	"github.com/nvaler/tripscout/internal/engine/recommend"
	"github.com/nvaler/tripscout/internal/model"
)

func runRecommend(args []string) error {
	var (
		query    string
		typesStr string
		radius   int
		perType  int
		sortBy   string
		prefsStr string
		output   string
		top      int
		verbose  bool
	)

	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	fs.StringVar(&query, "query", "", "Free-text location to search around (required)")
	fs.StringVar(&typesStr, "types", "", "Comma-separated activity types (default from config)")
	fs.IntVar(&radius, "radius", 0, "Search radius in meters (default from config)")
	fs.IntVar(&perType, "max-per-type", 0, "Max results per activity type (default from config)")
	fs.StringVar(&sortBy, "sort", "", "Sort criterion: rating, distance or reviews")
	fs.StringVar(&prefsStr, "prefs", "", "Preference weights for personalized ranking, e.g. \"museum=0.8,restaurant=0.5\"")
	fs.StringVar(&output, "output", "", "Write the recommendation as JSON to this path")
	fs.IntVar(&top, "top", 10, "How many results to print")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tripscout recommend [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tripscout recommend -query \"Tokyo, Japan\" -types \"tourist_attraction,restaurant,museum\"\n")
		fmt.Fprintf(os.Stderr, "  tripscout recommend -query Lisbon -sort distance -output lisbon.json\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if query == "" {
		return fmt.Errorf("-query is required")
	}
	prefs, err := parsePreferences(prefsStr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(verbose)
	client := places.NewClient(cfg.Provider, cfg.APIKey, logger)
	recommender := recommend.NewRecommender(client, cfg.Search, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	params := model.RecommendParams{
		Query:        query,
		RadiusMeters: radius,
		MaxPerType:   perType,
		SortBy:       sortBy,
	}
	if typesStr != "" {
		for _, t := range strings.Split(typesStr, ",") {
			params.Types = append(params.Types, strings.TrimSpace(t))
		}
	}

	rec := recommender.Recommend(ctx, params)

	if rec.QueryInfo != nil && rec.QueryInfo.Error != "" {
		fmt.Printf("No results: %s (%q)\n", rec.QueryInfo.Error, query)
		return nil
	}

	fmt.Printf("Search location: %.4f, %.4f\n", rec.SearchLocation.Lat, rec.SearchLocation.Lng)
	fmt.Printf("Total activities: %d\n\n", rec.TotalCount)

	shown := rec.Activities
	if len(prefs) > 0 {
		shown = recommend.PersonalizedRecommend(prefs, shown)
	}
	if top > 0 && len(shown) > top {
		shown = shown[:top]
	}
	for i := range shown {
		printActivity(&shown[i], i+1)
	}

	if output != "" {
		if err := writeRecommendation(rec, output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved recommendation to %s\n", output)
	}
	return nil
}

// parsePreferences turns "museum=0.8,restaurant=0.5" into a weight map.
func parsePreferences(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	prefs := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q, want type=weight", pair)
		}
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", pair, err)
		}
		prefs[key] = weight
	}
	return prefs, nil
}

func printActivity(a *model.Activity, index int) {
	fmt.Printf("%d. %s\n", index, a.Name)
	if a.Rating != nil {
		count := 0
		if a.UserRatingsTotal != nil {
			count = *a.UserRatingsTotal
		}
		fmt.Printf("   Rating: %.1f (%d reviews)\n", *a.Rating, count)
	} else {
		fmt.Printf("   Rating: N/A\n")
	}
	if a.Address != "" {
		fmt.Printf("   Address: %s\n", a.Address)
	}
	if a.Distance != nil {
		fmt.Printf("   Distance: %s\n", geo.FormatDistance(*a.Distance))
	}
	fmt.Printf("   Price: %s\n", a.PriceSymbol())
	if len(a.Types) > 0 {
		types := a.Types
		if len(types) > 3 {
			types = types[:3]
		}
		fmt.Printf("   Types: %s\n", strings.Join(types, ", "))
	}
	if a.IsOpenNow() {
		fmt.Printf("   Status: Open now\n")
	}
	fmt.Println()
}

func writeRecommendation(rec *model.TravelRecommendation, path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recommendation: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
