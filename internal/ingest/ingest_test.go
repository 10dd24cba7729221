package ingest

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const airportCSV = `code,name,city,country,latitude,longitude
poa,Salgado Filho,Porto Alegre,BR,-29.99,-51.17
GRU,Guarulhos,Sao Paulo,BR,-23.43,-46.47
GIG,Galeao,Rio de Janeiro,BR,-22.81,-43.25
`

func TestReadAirports(t *testing.T) {
	airports, err := ReadAirports(strings.NewReader(airportCSV))
	if err != nil {
		t.Fatalf("ReadAirports: %v", err)
	}
	if len(airports) != 3 {
		t.Fatalf("airports = %d, want 3 (header skipped)", len(airports))
	}

	// Codes are normalized to upper case, fields trimmed.
	first := airports[0]
	if first.Code != "POA" || first.City != "Porto Alegre" || first.Country != "BR" {
		t.Fatalf("first airport = %+v", first)
	}
	if first.Latitude != -29.99 || first.Longitude != -51.17 {
		t.Fatalf("coordinates = %v,%v", first.Latitude, first.Longitude)
	}
}

func TestReadAirports_NoHeader(t *testing.T) {
	in := "POA,Salgado Filho,Porto Alegre,BR,-29.99,-51.17\n"
	airports, err := ReadAirports(strings.NewReader(in))
	if err != nil || len(airports) != 1 {
		t.Fatalf("ReadAirports = %v, %v; want one record", airports, err)
	}
}

func TestReadAirports_BadCoordinates(t *testing.T) {
	in := airportCSV + "XXX,Broken,Nowhere,ZZ,north,east\n"
	if _, err := ReadAirports(strings.NewReader(in)); err == nil {
		t.Fatal("bad coordinates past row 1 should fail")
	}
}

func TestReadRoutes(t *testing.T) {
	in := `origin,destination,operator,distance_km
POA,GRU,G3,852
gru,gig,AD,
GIG,MIA,LA
`
	routes, err := ReadRoutes(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRoutes: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("routes = %d, want 3", len(routes))
	}

	if routes[0].Origin != "POA" || routes[0].DistanceKm != 852 || routes[0].Operator != "G3" {
		t.Fatalf("routes[0] = %+v", routes[0])
	}
	// Empty and absent distance columns both stay 0 for FillDistances.
	if routes[1].Origin != "GRU" || routes[1].DistanceKm != 0 {
		t.Fatalf("routes[1] = %+v", routes[1])
	}
	if routes[2].DistanceKm != 0 {
		t.Fatalf("routes[2] = %+v", routes[2])
	}
}

func TestReadRoutes_ThreeColumnHeader(t *testing.T) {
	in := "from,to,carrier\nPOA,GRU,G3\n"
	routes, err := ReadRoutes(strings.NewReader(in))
	if err != nil || len(routes) != 1 {
		t.Fatalf("ReadRoutes = %v, %v; want the header dropped", routes, err)
	}
}

func TestReadRoutes_TooFewColumns(t *testing.T) {
	if _, err := ReadRoutes(strings.NewReader("POA,GRU\n")); err == nil {
		t.Fatal("two-column row should fail")
	}
}

func TestHaversine(t *testing.T) {
	// Zero distance for identical points.
	if d := Haversine(-23.43, -46.47, -23.43, -46.47); d != 0 {
		t.Fatalf("identical points = %v", d)
	}

	// GRU to GIG is roughly 340 km great-circle.
	d := Haversine(-23.43, -46.47, -22.81, -43.25)
	if d < 320 || d > 360 {
		t.Fatalf("GRU-GIG = %v km, want ≈340", d)
	}

	// Symmetry.
	back := Haversine(-22.81, -43.25, -23.43, -46.47)
	if math.Abs(d-back) > 1e-9 {
		t.Fatalf("asymmetric: %v vs %v", d, back)
	}

	// Antipodal points approach half the Earth's circumference.
	half := Haversine(0, 0, 0, 180)
	if math.Abs(half-math.Pi*EarthRadiusKm) > 1 {
		t.Fatalf("antipodal = %v, want %v", half, math.Pi*EarthRadiusKm)
	}
}

func TestFillDistances(t *testing.T) {
	airports, err := ReadAirports(strings.NewReader(airportCSV))
	if err != nil {
		t.Fatal(err)
	}
	routes, err := ReadRoutes(strings.NewReader("POA,GRU,G3,852\nGRU,GIG,AD\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := FillDistances(airports, routes); err != nil {
		t.Fatalf("FillDistances: %v", err)
	}
	if routes[0].DistanceKm != 852 {
		t.Fatalf("explicit distance overwritten: %v", routes[0].DistanceKm)
	}
	want := Haversine(-23.43, -46.47, -22.81, -43.25)
	if routes[1].DistanceKm != want {
		t.Fatalf("filled distance = %v, want %v", routes[1].DistanceKm, want)
	}
}

func TestFillDistances_UnknownEndpoint(t *testing.T) {
	airports, _ := ReadAirports(strings.NewReader(airportCSV))

	rts, err := ReadRoutes(strings.NewReader("POA,XXX,G3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := FillDistances(airports, rts); err == nil {
		t.Fatal("unknown endpoint with missing distance should fail")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	ap := filepath.Join(dir, "airports.csv")
	rt := filepath.Join(dir, "routes.csv")
	if err := os.WriteFile(ap, []byte(airportCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	routesCSV := "origin,destination,operator,distance_km\nPOA,GRU,G3,852\nGRU,GIG,AD,\n"
	if err := os.WriteFile(rt, []byte(routesCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	airports, routes, err := LoadFiles(ap, rt)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(airports) != 3 || len(routes) != 2 {
		t.Fatalf("loaded %d airports, %d routes", len(airports), len(routes))
	}
	if routes[1].DistanceKm == 0 {
		t.Fatal("missing distance was not filled")
	}

	if _, _, err := LoadFiles(filepath.Join(dir, "absent.csv"), rt); err == nil {
		t.Fatal("missing airports file should fail")
	}
}
