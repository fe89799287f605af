package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/recommend"
	"github.com/nvaler/tripscout/internal/model"
)

func runRoute(args []string) error {
	var (
		input string
		lat   float64
		lng   float64
		stops int
	)

	fs := flag.NewFlagSet("route", flag.ExitOnError)
	fs.StringVar(&input, "input", "", "Path to a saved recommendation JSON (required)")
	fs.Float64Var(&lat, "lat", 0, "Start latitude (default: the saved search location)")
	fs.Float64Var(&lng, "lng", 0, "Start longitude (default: the saved search location)")
	fs.IntVar(&stops, "stops", 0, "Limit the route to the first N activities (0 = all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tripscout route -input rec.json [-lat -lng] [-stops N]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("-input is required")
	}

	// Presence of the flags decides, not their values, so an explicit
	// (0, 0) start stays usable.
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lng" {
			explicit = true
		}
	})

	rec, err := readRecommendation(input)
	if err != nil {
		return err
	}
	if len(rec.Activities) == 0 {
		return fmt.Errorf("no activities in %s", input)
	}

	start, err := resolveStart(rec, lat, lng, explicit)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	activities := rec.Activities
	if stops > 0 && len(activities) > stops {
		activities = activities[:stops]
	}

	route := recommend.PlanRoute(activities, start)

	fmt.Printf("Route (%d stops):\n\n", len(route))
	current := start
	for i := range route {
		leg := geo.Distance(current, route[i].Location)
		fmt.Printf("%d. %s\n", i+1, route[i].Name)
		fmt.Printf("   Leg: %s\n", geo.FormatDistance(leg))
		if route[i].Address != "" {
			fmt.Printf("   Address: %s\n", route[i].Address)
		}
		fmt.Println()
		current = route[i].Location
	}
	return nil
}

// resolveStart picks the route origin: explicitly passed coordinates
// win, otherwise the recommendation's saved search location.
func resolveStart(rec *model.TravelRecommendation, lat, lng float64, explicit bool) (model.Location, error) {
	if explicit {
		return model.Location{Lat: lat, Lng: lng}, nil
	}
	if rec.SearchLocation == nil {
		return model.Location{}, fmt.Errorf("no search location saved; pass -lat and -lng")
	}
	return *rec.SearchLocation, nil
}
