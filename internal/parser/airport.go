package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/CalsRain408/determine-numbers-of-flights/internal/logger"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/types"
)

var (
	airportNamePattern = regexp.MustCompile(`^.{3,20}$`)
	coordinatePattern  = regexp.MustCompile(`^-?\d+(\.\d{1,13})?$`)
)

// AirportParser parses the airport data CSV.
type AirportParser struct {
	path string
	log  *logger.Logger
}

// NewAirportParser creates a parser for the file at path.
func NewAirportParser(path string, log *logger.Logger) *AirportParser {
	return &AirportParser{path: path, log: log}
}

// Parse reads the whole file and returns the valid airports keyed by IATA
// code. A code appearing twice keeps the last row, matching file order.
func (p *AirportParser) Parse() (map[string]types.Airport, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	airports := make(map[string]types.Airport)
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
		if len(row) != 4 {
			p.log.Warn("line %d has wrong number of fields: %d", line, len(row))
			continue
		}

		ap, ok := p.validate(line, row)
		if !ok {
			continue
		}
		airports[ap.Code] = ap
	}

	p.log.Info("parsed %d airport records from %s", len(airports), p.path)
	return airports, nil
}

func (p *AirportParser) validate(line int, row []string) (types.Airport, bool) {
	name, code, latStr, lonStr := row[0], row[1], row[2], row[3]

	if !airportNamePattern.MatchString(name) {
		p.log.Warn("line %d: invalid airport name: %s", line, name)
		return types.Airport{}, false
	}
	if !airportCodePattern.MatchString(code) {
		p.log.Warn("line %d: invalid airport code: %s", line, code)
		return types.Airport{}, false
	}
	if !coordinatePattern.MatchString(latStr) {
		p.log.Warn("line %d: invalid latitude: %s", line, latStr)
		return types.Airport{}, false
	}
	if !coordinatePattern.MatchString(lonStr) {
		p.log.Warn("line %d: invalid longitude: %s", line, lonStr)
		return types.Airport{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		p.log.Warn("line %d: latitude out of range: %s", line, latStr)
		return types.Airport{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		p.log.Warn("line %d: longitude out of range: %s", line, lonStr)
		return types.Airport{}, false
	}

	return types.Airport{
		Name:      name,
		Code:      code,
		Latitude:  lat,
		Longitude: lon,
	}, true
}
