package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CalsRain408/determine-numbers-of-flights/internal/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestPassengerParserValidRecords(t *testing.T) {
	data := strings.Join([]string{
		"UES9151GS5,SOH3549S,DEN,FRA,1420564460,1049",
		"WBE6935NU3,XXQ4064B,JFK,FRA,1420563917,802",
	}, "\n")
	path := writeFile(t, "passengers.csv", data)

	var buf bytes.Buffer
	log := logger.NewWithOutput("WARN", &buf)

	records, err := NewPassengerParser(path, log).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("parsed %d records, want 2", len(records))
	}

	r := records[0]
	if r.PassengerID != "UES9151GS5" || r.FlightID != "SOH3549S" {
		t.Fatalf("unexpected ids: %+v", r)
	}
	if r.FromAirport != "DEN" || r.DestAirport != "FRA" {
		t.Fatalf("unexpected airports: %+v", r)
	}
	if r.DepartureTime != 1420564460 || !r.Departure.Equal(time.Unix(1420564460, 0)) {
		t.Fatalf("unexpected departure: %+v", r)
	}
	if r.FlightTime != 1049 {
		t.Fatalf("unexpected flight time: %d", r.FlightTime)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected warnings for valid input: %s", buf.String())
	}
}

func TestPassengerParserSkipsInvalidRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
		warn string
	}{
		{"bad passenger id", "ues9151gs5,SOH3549S,DEN,FRA,1420564460,1049", "invalid passenger ID"},
		{"bad flight id", "UES9151GS5,SOH35499,DEN,FRA,1420564460,1049", "invalid flight ID"},
		{"bad from airport", "UES9151GS5,SOH3549S,DE,FRA,1420564460,1049", "invalid from airport"},
		{"bad dest airport", "UES9151GS5,SOH3549S,DEN,FRAN,1420564460,1049", "invalid destination airport"},
		{"negative departure", "UES9151GS5,SOH3549S,DEN,FRA,-5,1049", "negative departure time"},
		{"departure not a number", "UES9151GS5,SOH3549S,DEN,FRA,soon,1049", "invalid departure time"},
		{"flight time zero", "UES9151GS5,SOH3549S,DEN,FRA,1420564460,0", "flight time out of range"},
		{"flight time too long", "UES9151GS5,SOH3549S,DEN,FRA,1420564460,10000", "flight time out of range"},
		{"wrong field count", "UES9151GS5,SOH3549S,DEN,FRA,1420564460", "wrong number of fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// One bad row sandwiched between two good ones.
			data := strings.Join([]string{
				"UES9151GS5,SOH3549S,DEN,FRA,1420564460,1049",
				tc.row,
				"WBE6935NU3,XXQ4064B,JFK,FRA,1420563917,802",
			}, "\n")
			path := writeFile(t, "passengers.csv", data)

			var buf bytes.Buffer
			log := logger.NewWithOutput("WARN", &buf)

			records, err := NewPassengerParser(path, log).Parse()
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("parsed %d records, want 2 (bad row skipped)", len(records))
			}
			if !strings.Contains(buf.String(), tc.warn) {
				t.Fatalf("log %q does not mention %q", buf.String(), tc.warn)
			}
		})
	}
}

func TestPassengerParserMissingFile(t *testing.T) {
	log := logger.NewWithOutput("ERROR", &bytes.Buffer{})
	_, err := NewPassengerParser("/nonexistent/passengers.csv", log).Parse()
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestAirportParserValidRecords(t *testing.T) {
	data := strings.Join([]string{
		"DENVER INTL,DEN,39.858,-104.667",
		"FRANKFURT MAIN,FRA,50.026,8.543",
	}, "\n")
	path := writeFile(t, "airports.csv", data)

	var buf bytes.Buffer
	log := logger.NewWithOutput("WARN", &buf)

	airports, err := NewAirportParser(path, log).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("parsed %d airports, want 2", len(airports))
	}

	den, ok := airports["DEN"]
	if !ok {
		t.Fatalf("DEN missing from %v", airports)
	}
	if den.Name != "DENVER INTL" || den.Latitude != 39.858 || den.Longitude != -104.667 {
		t.Fatalf("unexpected DEN record: %+v", den)
	}
}

func TestAirportParserSkipsInvalidRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
		warn string
	}{
		{"name too short", "AB,ABQ,35.040,-106.609", "invalid airport name"},
		{"bad code", "ALBUQUERQUE,ABQX,35.040,-106.609", "invalid airport code"},
		{"latitude out of range", "ALBUQUERQUE,ABQ,95.0,-106.609", "latitude out of range"},
		{"longitude out of range", "ALBUQUERQUE,ABQ,35.040,-190.0", "longitude out of range"},
		{"latitude not numeric", "ALBUQUERQUE,ABQ,north,-106.609", "invalid latitude"},
		{"wrong field count", "ALBUQUERQUE,ABQ,35.040", "wrong number of fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := strings.Join([]string{
				"DENVER INTL,DEN,39.858,-104.667",
				tc.row,
			}, "\n")
			path := writeFile(t, "airports.csv", data)

			var buf bytes.Buffer
			log := logger.NewWithOutput("WARN", &buf)

			airports, err := NewAirportParser(path, log).Parse()
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(airports) != 1 {
				t.Fatalf("parsed %d airports, want 1 (bad row skipped)", len(airports))
			}
			if !strings.Contains(buf.String(), tc.warn) {
				t.Fatalf("log %q does not mention %q", buf.String(), tc.warn)
			}
		})
	}
}
