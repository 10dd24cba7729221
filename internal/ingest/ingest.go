// Package ingest reads airport and route tables from CSV files and turns
// them into the records core.Build consumes. Distances missing from the
// route table are filled with the haversine great-circle distance so the
// core itself never touches coordinates.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/flightgrid/flightgrid/core"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Airport CSV columns: code,name,city,country,latitude,longitude.
// Route CSV columns: origin,destination,operator[,distance_km].
// A first row whose numeric columns do not parse is treated as a header.

// ReadAirports parses the airport table.
func ReadAirports(r io.Reader) ([]core.Airport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	var out []core.Airport
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: airports row %d: %w", row+1, err)
		}
		row++

		lat, latErr := strconv.ParseFloat(rec[4], 64)
		lon, lonErr := strconv.ParseFloat(rec[5], 64)
		if latErr != nil || lonErr != nil {
			if row == 1 {
				continue // header row
			}

			return nil, fmt.Errorf("ingest: airports row %d: bad coordinates %q,%q", row, rec[4], rec[5])
		}

		out = append(out, core.Airport{
			Code:      strings.ToUpper(strings.TrimSpace(rec[0])),
			Name:      strings.TrimSpace(rec[1]),
			City:      strings.TrimSpace(rec[2]),
			Country:   strings.TrimSpace(rec[3]),
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return out, nil
}

// ReadRoutes parses the route table. The distance column is optional; a
// missing or empty value is left at 0 for FillDistances to resolve.
func ReadRoutes(r io.Reader) ([]core.RouteRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // 3 or 4 columns
	cr.TrimLeadingSpace = true

	var out []core.RouteRecord
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: routes row %d: %w", row+1, err)
		}
		row++

		if len(rec) < 3 {
			return nil, fmt.Errorf("ingest: routes row %d: want at least origin,destination,operator", row)
		}

		rr := core.RouteRecord{
			Origin:      strings.ToUpper(strings.TrimSpace(rec[0])),
			Destination: strings.ToUpper(strings.TrimSpace(rec[1])),
			Operator:    strings.TrimSpace(rec[2]),
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			d, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				if row == 1 {
					continue // header row
				}

				return nil, fmt.Errorf("ingest: routes row %d: bad distance %q", row, rec[3])
			}
			rr.DistanceKm = d
		} else if row == 1 && looksLikeHeader(rec) {
			continue
		}

		out = append(out, rr)
	}

	return out, nil
}

// looksLikeHeader guesses whether a 3-column first row is a header.
func looksLikeHeader(rec []string) bool {
	first := strings.ToLower(strings.TrimSpace(rec[0]))

	return first == "origin" || first == "origem" || first == "from"
}

// FillDistances replaces zero distances with the haversine great-circle
// distance between the endpoints' coordinates. Records referencing
// unknown airports are reported, not skipped.
func FillDistances(airports []core.Airport, routes []core.RouteRecord) error {
	byCode := make(map[string]core.Airport, len(airports))
	for _, a := range airports {
		byCode[a.Code] = a
	}

	for i, r := range routes {
		if r.DistanceKm != 0 {
			continue
		}
		from, okFrom := byCode[r.Origin]
		to, okTo := byCode[r.Destination]
		if !okFrom || !okTo {
			return fmt.Errorf("ingest: route %s→%s: distance missing and endpoint coordinates unknown", r.Origin, r.Destination)
		}
		routes[i].DistanceKm = Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	}

	return nil
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	lat1 *= degToRad
	lon1 *= degToRad
	lat2 *= degToRad
	lon2 *= degToRad

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// LoadFiles reads both tables from disk and fills missing distances.
func LoadFiles(airportsPath, routesPath string) ([]core.Airport, []core.RouteRecord, error) {
	af, err := os.Open(airportsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: %w", err)
	}
	defer af.Close()

	airports, err := ReadAirports(af)
	if err != nil {
		return nil, nil, err
	}

	rf, err := os.Open(routesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: %w", err)
	}
	defer rf.Close()

	routes, err := ReadRoutes(rf)
	if err != nil {
		return nil, nil, err
	}

	if err := FillDistances(airports, routes); err != nil {
		return nil, nil, err
	}

	return airports, routes, nil
}
