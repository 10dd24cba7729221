package codeshare_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/flightgrid/flightgrid/codeshare"
	"github.com/flightgrid/flightgrid/core"
	"github.com/flightgrid/flightgrid/johnson"
)

type ClassifySuite struct {
	suite.Suite

	g   *core.Graph
	res *johnson.Result
}

// SetupTest builds the shared network:
//
//	POA -G3-> GRU -AD-> GIG -LA-> MIA     (chain)
//	POA -G3-> GIG                         (direct, longer than via GRU)
//
// Shortest paths crossing operators: POA→GIG (1 stop, G3/AD),
// GRU→MIA (1 stop, AD/LA), POA→MIA (2 stops, G3/AD/LA).
func (s *ClassifySuite) SetupTest() {
	airports := []core.Airport{
		{Code: "POA", City: "Porto Alegre", Country: "BR", Latitude: -29.99, Longitude: -51.17},
		{Code: "GRU", City: "Sao Paulo", Country: "BR", Latitude: -23.43, Longitude: -46.47},
		{Code: "GIG", City: "Rio de Janeiro", Country: "BR", Latitude: -22.81, Longitude: -43.25},
		{Code: "MIA", City: "Miami", Country: "US", Latitude: 25.79, Longitude: -80.29},
	}
	routes := []core.RouteRecord{
		{Origin: "POA", Destination: "GRU", DistanceKm: 852, Operator: "G3"},
		{Origin: "GRU", Destination: "GIG", DistanceKm: 338, Operator: "AD"},
		{Origin: "POA", Destination: "GIG", DistanceKm: 1500, Operator: "G3"},
		{Origin: "GIG", Destination: "MIA", DistanceKm: 7000, Operator: "LA"},
	}

	g, err := core.Build(airports, routes)
	require.NoError(s.T(), err)
	res, err := johnson.AllPairs(g)
	require.NoError(s.T(), err)

	s.g, s.res = g, res
}

// pairs projects opportunities to "POA→GIG" strings, preserving order.
func pairs(opps []codeshare.Opportunity) []string {
	out := make([]string, len(opps))
	for i, o := range opps {
		out[i] = o.Origin + "→" + o.Destination
	}

	return out
}

// TestUnbounded: every mixed-operator shortest path qualifies, ranked by
// ascending distance.
func (s *ClassifySuite) TestUnbounded() {
	opps, err := codeshare.Classify(s.g, s.res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"POA→GIG", "GRU→MIA", "POA→MIA"}, pairs(opps))

	first := opps[0]
	require.Equal(s.T(), 1190.0, first.DistanceKm) // 852 + 338, beats the 1500 direct
	require.Equal(s.T(), 1, first.Stops)
	require.Equal(s.T(), 1, first.Transitions)
	require.True(s.T(), first.Domestic)
	require.Len(s.T(), first.Segments, 2)

	last := opps[2]
	require.Equal(s.T(), 8190.0, last.DistanceKm)
	require.Equal(s.T(), 2, last.Stops)
	require.Equal(s.T(), 2, last.Transitions)
	require.False(s.T(), last.Domestic)
}

// TestSingleOperatorPathsNeverQualify: nonstop and same-carrier routings
// produce no opportunity regardless of thresholds.
func (s *ClassifySuite) TestSingleOperatorPathsNeverQualify() {
	opps, err := codeshare.Classify(s.g, s.res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)
	for _, o := range opps {
		require.GreaterOrEqual(s.T(), o.Transitions, 1, "pair %s→%s", o.Origin, o.Destination)
	}
	require.NotContains(s.T(), pairs(opps), "POA→GRU")
	require.NotContains(s.T(), pairs(opps), "GIG→MIA")
}

func (s *ClassifySuite) TestMinDistance() {
	th := codeshare.DefaultThresholds()
	th.MinDistanceKm = 2000
	opps, err := codeshare.Classify(s.g, s.res, th)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"GRU→MIA", "POA→MIA"}, pairs(opps))
}

func (s *ClassifySuite) TestMaxDistance() {
	th := codeshare.DefaultThresholds()
	th.MaxDistanceKm = 2000
	opps, err := codeshare.Classify(s.g, s.res, th)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"POA→GIG"}, pairs(opps))
}

func (s *ClassifySuite) TestMaxStops() {
	th := codeshare.DefaultThresholds()
	th.MaxStops = 1
	opps, err := codeshare.Classify(s.g, s.res, th)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"POA→GIG", "GRU→MIA"}, pairs(opps))

	// A zero cap admits nonstop only, and nonstops never qualify.
	th.MaxStops = 0
	opps, err = codeshare.Classify(s.g, s.res, th)
	require.NoError(s.T(), err)
	require.Empty(s.T(), opps)
}

// TestSuppressSingleOperator: a direct leg tying the shortest distance
// makes the codeshare optional and suppresses the pair.
func (s *ClassifySuite) TestSuppressSingleOperator() {
	airports := []core.Airport{
		{Code: "AAA", City: "AAA", Country: "BR", Latitude: 1, Longitude: 1},
		{Code: "BBB", City: "BBB", Country: "BR", Latitude: 2, Longitude: 2},
		{Code: "CCC", City: "CCC", Country: "BR", Latitude: 3, Longitude: 3},
	}
	// The direct leg trails the two-leg routing by far less than the tie
	// epsilon, so the mixed-operator path wins yet the nonstop ties it.
	routes := []core.RouteRecord{
		{Origin: "AAA", Destination: "BBB", DistanceKm: 100, Operator: "G3"},
		{Origin: "BBB", Destination: "CCC", DistanceKm: 100, Operator: "AD"},
		{Origin: "AAA", Destination: "CCC", DistanceKm: 200 + 1e-9, Operator: "G3"},
	}
	g, err := core.Build(airports, routes)
	require.NoError(s.T(), err)
	res, err := johnson.AllPairs(g)
	require.NoError(s.T(), err)

	opps, err := codeshare.Classify(g, res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"AAA→CCC"}, pairs(opps))

	th := codeshare.DefaultThresholds()
	th.SuppressSingleOperator = true
	opps, err = codeshare.Classify(g, res, th)
	require.NoError(s.T(), err)
	require.Empty(s.T(), opps)
}

func (s *ClassifySuite) TestArgumentErrors() {
	_, err := codeshare.Classify(nil, s.res, codeshare.DefaultThresholds())
	require.ErrorIs(s.T(), err, codeshare.ErrNilGraph)

	_, err = codeshare.Classify(s.g, nil, codeshare.DefaultThresholds())
	require.ErrorIs(s.T(), err, codeshare.ErrNilResult)

	th := codeshare.DefaultThresholds()
	th.MinDistanceKm = -1
	_, err = codeshare.Classify(s.g, s.res, th)
	require.ErrorIs(s.T(), err, codeshare.ErrBadThreshold)

	th = codeshare.DefaultThresholds()
	th.MinDistanceKm = 500
	th.MaxDistanceKm = 100
	_, err = codeshare.Classify(s.g, s.res, th)
	require.ErrorIs(s.T(), err, codeshare.ErrBadThreshold)
}

// TestDeterministicRanking: two classifications of one result agree
// element for element.
func (s *ClassifySuite) TestDeterministicRanking() {
	first, err := codeshare.Classify(s.g, s.res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)
	second, err := codeshare.Classify(s.g, s.res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)
	require.Equal(s.T(), first, second)
}

func (s *ClassifySuite) TestConnectionHubs() {
	opps, err := codeshare.Classify(s.g, s.res, codeshare.DefaultThresholds())
	require.NoError(s.T(), err)

	hubs := codeshare.ConnectionHubs(opps)
	// GRU connects POA→GIG and POA→MIA; GIG connects GRU→MIA and POA→MIA.
	require.Equal(s.T(), map[string]int{"GRU": 2, "GIG": 2}, hubs)

	require.Empty(s.T(), codeshare.ConnectionHubs(nil))
}

func TestClassifySuite(t *testing.T) {
	suite.Run(t, new(ClassifySuite))
}
