package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/model"
)

func runExport(args []string) error {
	var inputPath, outputPath, format string

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.StringVar(&inputPath, "input", "", "Path to a saved recommendation JSON (required)")
	fs.StringVar(&outputPath, "output", "", "Output file path (default: same dir as input)")
	fs.StringVar(&format, "format", "csv", "Export format: csv")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tripscout export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tripscout export -input tokyo.json\n")
		fmt.Fprintf(os.Stderr, "  tripscout export -input tokyo.json -output tokyo.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if inputPath == "" {
		return fmt.Errorf("-input is required")
	}
	if format != "csv" {
		return fmt.Errorf("unsupported format: %s (only csv supported)", format)
	}

	if outputPath == "" {
		dir := filepath.Dir(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), ".json")
		outputPath = filepath.Join(dir, base+".csv")
	}

	rec, err := readRecommendation(inputPath)
	if err != nil {
		return err
	}
	if len(rec.Activities) == 0 {
		return fmt.Errorf("no activities found in %s", inputPath)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"place_id", "name", "address", "lat", "lng",
		"rating", "user_ratings_total", "types",
		"price_level", "distance_m", "open_now",
	})

	for i := range rec.Activities {
		a := &rec.Activities[i]

		rating := ""
		if a.Rating != nil {
			rating = fmt.Sprintf("%.1f", *a.Rating)
		}
		count := ""
		if a.UserRatingsTotal != nil {
			count = strconv.Itoa(*a.UserRatingsTotal)
		}
		price := ""
		if a.PriceLevel != nil {
			price = strconv.Itoa(*a.PriceLevel)
		}
		distance := ""
		if a.Distance != nil {
			distance = fmt.Sprintf("%.0f", *a.Distance)
		}
		openNow := ""
		if a.OpeningHours != nil && a.OpeningHours.OpenNow != nil {
			openNow = strconv.FormatBool(*a.OpeningHours.OpenNow)
		}

		w.Write([]string{
			a.PlaceID,
			a.Name,
			a.Address,
			fmt.Sprintf("%.6f", a.Location.Lat),
			fmt.Sprintf("%.6f", a.Location.Lng),
			rating,
			count,
			strings.Join(a.Types, ";"),
			price,
			distance,
			openNow,
		})
	}

	fmt.Fprintf(os.Stderr, "Exported %d activities to %s\n", len(rec.Activities), outputPath)
	return nil
}

func readRecommendation(path string) (*model.TravelRecommendation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec model.TravelRecommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &rec, nil
}
