// Package parser reads the passenger flight and airport data files. Lines
// that fail validation are logged and skipped so one bad row never sinks a
// whole analysis run; only a missing or unreadable file is an error.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/CalsRain408/determine-numbers-of-flights/internal/logger"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/types"
)

var (
	passengerIDPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}[A-Z]{2}[0-9]$`)
	flightIDPattern    = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}[A-Z]$`)
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// PassengerParser parses the passenger flight data CSV.
type PassengerParser struct {
	path string
	log  *logger.Logger
}

// NewPassengerParser creates a parser for the file at path.
func NewPassengerParser(path string, log *logger.Logger) *PassengerParser {
	return &PassengerParser{path: path, log: log}
}

// Parse reads the whole file and returns the valid records in file order.
func (p *PassengerParser) Parse() ([]types.PassengerRecord, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open passenger data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field counts are checked per line below

	var records []types.PassengerRecord
	line := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			p.log.Warn("line %d: unreadable row: %v", line, err)
			continue
		}
		if len(row) != 6 {
			p.log.Warn("line %d has wrong number of fields: %d", line, len(row))
			continue
		}

		rec, ok := p.validate(line, row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	p.log.Info("parsed %d passenger records from %s", len(records), p.path)
	return records, nil
}

// validate checks one row and converts it to a record. Invalid rows are
// logged at WARN and dropped.
func (p *PassengerParser) validate(line int, row []string) (types.PassengerRecord, bool) {
	passengerID, flightID, from, dest, depStr, durStr := row[0], row[1], row[2], row[3], row[4], row[5]

	if !passengerIDPattern.MatchString(passengerID) {
		p.log.Warn("line %d: invalid passenger ID: %s", line, passengerID)
		return types.PassengerRecord{}, false
	}
	if !flightIDPattern.MatchString(flightID) {
		p.log.Warn("line %d: invalid flight ID: %s", line, flightID)
		return types.PassengerRecord{}, false
	}
	if !airportCodePattern.MatchString(from) {
		p.log.Warn("line %d: invalid from airport code: %s", line, from)
		return types.PassengerRecord{}, false
	}
	if !airportCodePattern.MatchString(dest) {
		p.log.Warn("line %d: invalid destination airport code: %s", line, dest)
		return types.PassengerRecord{}, false
	}

	departure, err := strconv.ParseInt(depStr, 10, 64)
	if err != nil {
		p.log.Warn("line %d: invalid departure time: %s", line, depStr)
		return types.PassengerRecord{}, false
	}
	if departure < 0 {
		p.log.Warn("line %d: negative departure time: %s", line, depStr)
		return types.PassengerRecord{}, false
	}

	flightTime, err := strconv.Atoi(durStr)
	if err != nil {
		p.log.Warn("line %d: invalid flight time: %s", line, durStr)
		return types.PassengerRecord{}, false
	}
	if flightTime < 1 || flightTime > 9999 {
		p.log.Warn("line %d: flight time out of range: %s", line, durStr)
		return types.PassengerRecord{}, false
	}

	return types.PassengerRecord{
		PassengerID:   passengerID,
		FlightID:      flightID,
		FromAirport:   from,
		DestAirport:   dest,
		DepartureTime: departure,
		Departure:     time.Unix(departure, 0),
		FlightTime:    flightTime,
	}, true
}
