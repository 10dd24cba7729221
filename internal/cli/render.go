package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/flightgrid/flightgrid/codeshare"
	"github.com/flightgrid/flightgrid/core"
	"github.com/flightgrid/flightgrid/paths"
)

// renderOpportunities prints the ranked opportunity list.
func renderOpportunities(w io.Writer, opps []codeshare.Opportunity) {
	if len(opps) == 0 {
		fmt.Fprintln(w, "No codeshare opportunities found.")

		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Origin", "Destination", "Distance (km)", "Stops", "Scope", "Route"})
	for i, o := range opps {
		scope := "international"
		if o.Domestic {
			scope = "domestic"
		}
		t.AppendRow(table.Row{i + 1, o.Origin, o.Destination,
			fmt.Sprintf("%.0f", o.DistanceKm), o.Stops, scope, routeColumn(o)})
	}
	t.Render()
}

// routeColumn renders a compact per-segment route with operator tags,
// e.g. "POA→GRU[G3] GRU→MIA[AD]".
func routeColumn(o codeshare.Opportunity) string {
	parts := make([]string, 0, len(o.Segments))
	for _, s := range o.Segments {
		parts = append(parts, fmt.Sprintf("%s→%s[%s]", s.From, s.To, strings.Join(s.Operators, ",")))
	}

	return strings.Join(parts, " ")
}

// renderSegments prints one route's legs with their operators.
func renderSegments(w io.Writer, segs []paths.Segment) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"From", "To", "Distance (km)", "Operators"})
	for _, s := range segs {
		t.AppendRow(table.Row{s.From, s.To, fmt.Sprintf("%.0f", s.DistanceKm), strings.Join(s.Operators, ", ")})
	}
	t.Render()
}

// renderHubs prints connection-hub usage, busiest first.
func renderHubs(w io.Writer, hubs map[string]int) {
	type hubRow struct {
		code  string
		count int
	}
	rows := make([]hubRow, 0, len(hubs))
	for code, count := range hubs {
		rows = append(rows, hubRow{code, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}

		return rows[i].code < rows[j].code
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Hub", "Connections"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.code, r.count})
	}
	t.Render()
}

// renderStats prints the network summary.
func renderStats(w io.Writer, s core.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Airports", s.Airports})
	t.AppendRow(table.Row{"Legs", s.Legs})
	t.AppendRow(table.Row{"Operators", s.Operators})
	t.AppendRow(table.Row{"Density", fmt.Sprintf("%.4f", s.Density)})
	t.AppendRow(table.Row{"Avg out-degree", fmt.Sprintf("%.2f", s.AvgOutDegree)})
	t.Render()
}

// writeJSON emits indented JSON for machine consumers.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
