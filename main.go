package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/CalsRain408/determine-numbers-of-flights/internal/jobs"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/logger"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/output"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/parser"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/runner"
)

func main() {
	passengerFile := flag.String("passenger-file", "", "Path to the passenger data file (required)")
	airportFile := flag.String("airport-file", "", "Path to the airport data file (required)")
	outputDir := flag.String("output-dir", "./results", "Directory to save results")
	mappers := flag.Int("mappers", 4, "Number of mapper workers")
	reducers := flag.Int("reducers", 2, "Number of reducer workers")
	job := flag.String("job", "frequent", "Job to run: 'frequent' or 'airports'")
	topN := flag.Int("top-n", 10, "Number of top results to display")
	logLevel := flag.String("log-level", "INFO", "Log level: DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	if *passengerFile == "" || *airportFile == "" {
		fmt.Fprintln(os.Stderr, "both -passenger-file and -airport-file are required")
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(*logLevel)

	records, err := parser.NewPassengerParser(*passengerFile, log).Parse()
	if err != nil {
		log.Error("failed to load passenger data: %v", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		log.Error("no passenger records found, exiting")
		os.Exit(1)
	}

	airports, err := parser.NewAirportParser(*airportFile, log).Parse()
	if err != nil {
		log.Error("failed to load airport data: %v", err)
		os.Exit(1)
	}
	if len(airports) == 0 {
		log.Warn("no airport records found, airport results may be incomplete")
	}

	r := runner.New(*mappers, *reducers, log)
	ctx := context.Background()

	switch *job {
	case "frequent":
		counts, err := r.Run(ctx, "Most Frequent Flyers", records, jobs.FlightCount{})
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		report("Most Frequent Flyers", "Passenger ID", "Flight Count", counts, *topN, *outputDir, log)

	case "airports":
		counts, err := r.Run(ctx, "Flights Per Airport", records, jobs.AirportDepartures{})
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		// Airports nobody departed from still belong in the ranking.
		codes := make([]string, 0, len(airports))
		for code := range airports {
			codes = append(codes, code)
		}
		counts = output.FillZeroCounts(counts, codes)
		report("Flights Per Airport", "Airport", "Departures", counts, *topN, *outputDir, log)

	default:
		fmt.Fprintf(os.Stderr, "Unknown job: %s\n", *job)
		os.Exit(1)
	}
}

// report prints the top-n table to stdout and exports the full ranking to
// the output directory as JSON.
func report(jobName, keyHeader, valueHeader string, counts map[string]int, topN int, dir string, log *logger.Logger) {
	entries := output.TopN(counts, topN)

	fmt.Printf("\n=== %s ===\n", jobName)
	if err := output.WriteTable(os.Stdout, keyHeader, valueHeader, entries); err != nil {
		log.Error("failed to render results: %v", err)
	}
	if len(counts) > len(entries) {
		fmt.Printf("\nTotal: %d\n", len(counts))
	}

	path, err := output.ExportJSON(jobName, dir, output.TopN(counts, 0))
	if err != nil {
		log.Error("failed to export results: %v", err)
		return
	}
	log.Info("exported results to %s", path)
}
