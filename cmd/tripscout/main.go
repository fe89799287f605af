package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nvaler/tripscout/internal/tui"
)

var version = "dev"

func main() {
	// Optional .env with GOOGLE_API_KEY and TRIPSCOUT_* overrides.
	godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "recommend":
			if err := runRecommend(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "details":
			if err := runDetails(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "route":
			if err := runRoute(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "export":
			if err := runExport(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Println("tripscout " + version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	// No subcommand → launch TUI
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `tripscout - things to do near a location

Usage:
  tripscout                   Launch interactive TUI
  tripscout recommend [flags] Search and rank nearby activities
  tripscout details [flags]   Show full details for one place
  tripscout route [flags]     Greedy route order for a saved result
  tripscout export [flags]    Export a saved result to CSV
  tripscout version           Show version

Run 'tripscout <command> --help' for flags.
`)
}

// newLogger builds the CLI logger: console output on stderr, debug
// level with -v, warnings only otherwise.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
