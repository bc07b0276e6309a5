package mcp_test

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	mcp_internal "github.com/huangsam/airspot/internal/mcp"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/huangsam/airspot/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *core.Dataset {
	t.Helper()
	start := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)
	var nyc, bogota []schema.Reading
	for i := range 48 {
		ts := start.Add(time.Duration(i) * time.Hour)
		nyc = append(nyc, schema.Reading{Time: ts, PM25: float64(i%5 + 1)})
		bogota = append(bogota, schema.Reading{Time: ts, PM25: float64(2*(i%7) + 3), PM10: float64(40 + i)})
	}
	a, err := core.NewSeries(schema.StationNYC, nyc)
	require.NoError(t, err)
	b, err := core.NewSeries(schema.StationBogota, bogota)
	require.NoError(t, err)
	ds, err := core.NewDataset(a, b)
	require.NoError(t, err)
	return ds
}

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	ds := testDataset(t)
	sim, err := realtime.NewSimulator(ds, realtime.WithSource(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	baseCfg := &contract.Config{Pollutant: schema.PM25}
	return mcp_internal.NewMCPServer(baseCfg, ds, sim)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServer_RegistersEveryTool(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{
		"get_station_stats", "get_timeseries", "get_daily_averages", "get_hourly_pattern",
		"get_monthly_pattern", "check_compliance", "compare_stations", "get_summary",
		"get_realtime_reading",
	} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown station", func(t *testing.T) {
		res := callTool(t, s, "get_station_stats", map[string]any{"station": "Medellin"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(res), `unknown station "Medellin"`)
	})

	t.Run("PM10 at NYC", func(t *testing.T) {
		res := callTool(t, s, "get_daily_averages", map[string]any{"station": "NYC", "pollutant": "PM10"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "pollutant PM10 unavailable for station NYC")
	})

	t.Run("unknown pollutant", func(t *testing.T) {
		res := callTool(t, s, "get_hourly_pattern", map[string]any{"station": "Bogota", "pollutant": "NO2"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "must be PM2.5 or PM10")
	})

	t.Run("invalid stride", func(t *testing.T) {
		res := callTool(t, s, "get_timeseries", map[string]any{"station": "NYC", "stride": 0.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "stride must be at least 1")
	})

	t.Run("compare on PM10", func(t *testing.T) {
		res := callTool(t, s, "compare_stations", map[string]any{"pollutant": "PM10"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "comparison failed")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	s := newTestServer(t)

	t.Run("timeseries", func(t *testing.T) {
		res := callTool(t, s, "get_timeseries", map[string]any{"station": "bogota", "pollutant": "pm10", "stride": 12.0})
		require.False(t, res.IsError, resultText(res))

		var got schema.SeriesResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		assert.Equal(t, schema.PM10, got.Pollutant)
		assert.Equal(t, 12, got.Stride)
		require.Len(t, got.Points, 4)
		assert.Equal(t, 52.0, got.Points[1].Value)
	})

	t.Run("monthly", func(t *testing.T) {
		res := callTool(t, s, "get_monthly_pattern", map[string]any{"station": "NYC"})
		require.False(t, res.IsError, resultText(res))
		assert.Contains(t, resultText(res), `"month": "Sep"`)
	})

	t.Run("compliance", func(t *testing.T) {
		res := callTool(t, s, "check_compliance", map[string]any{"station": "Bogota"})
		require.False(t, res.IsError, resultText(res))
		assert.Contains(t, resultText(res), `"pm10_annual_compliant"`)
	})

	t.Run("summary samples comparison records", func(t *testing.T) {
		res := callTool(t, s, "get_summary", nil)
		require.False(t, res.IsError, resultText(res))

		var got struct {
			Comparison struct {
				TotalCount int               `json:"total_count"`
				Records    []json.RawMessage `json:"comparison_data"`
			} `json:"comparison"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		assert.Equal(t, 48, got.Comparison.TotalCount)
		assert.Len(t, got.Comparison.Records, 3)
	})

	t.Run("realtime", func(t *testing.T) {
		res := callTool(t, s, "get_realtime_reading", map[string]any{"station": "Bogota"})
		require.False(t, res.IsError, resultText(res))

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
		assert.Equal(t, "Bogota", got["city"])
		assert.Contains(t, got, "pm10")
		assert.Contains(t, got, "aqi_category")
	})
}
