// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	stationEnum   = mcp.Enum("NYC", "Bogota")
	pollutantEnum = mcp.Enum("PM2.5", "PM10")
)

// NewMCPServer initializes and configures the Airspot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, ds *core.Dataset, sim *realtime.Simulator) *server.MCPServer {
	s := server.NewMCPServer(
		"Airspot Air Quality Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		ds:      ds,
		sim:     sim,
	}

	// --- 1. Tool: get_station_stats ---
	s.AddTool(mcp.NewTool("get_station_stats",
		mcp.WithDescription("Descriptive statistics (mean, median, std, min, max, count) of every pollutant a station measures."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
	), h.handleGetStationStats)

	// --- 2. Tool: get_timeseries ---
	s.AddTool(mcp.NewTool("get_timeseries",
		mcp.WithDescription("Hourly readings of one pollutant, keeping every stride-th point."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
		mcp.WithString("pollutant", mcp.Description("Pollutant. Defaults to PM2.5."), pollutantEnum),
		mcp.WithNumber("stride", mcp.Description("Keep every Nth reading. Defaults to 6.")),
	), h.handleGetTimeseries)

	// --- 3. Tool: get_daily_averages ---
	s.AddTool(mcp.NewTool("get_daily_averages",
		mcp.WithDescription("Mean concentration of each calendar day that has readings."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
		mcp.WithString("pollutant", mcp.Description("Pollutant. Defaults to PM2.5."), pollutantEnum),
	), h.handleGetDailyAverages)

	// --- 4. Tool: get_hourly_pattern ---
	s.AddTool(mcp.NewTool("get_hourly_pattern",
		mcp.WithDescription("Mean concentration per hour of day across every date."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
		mcp.WithString("pollutant", mcp.Description("Pollutant. Defaults to PM2.5."), pollutantEnum),
	), h.handleGetHourlyPattern)

	// --- 5. Tool: get_monthly_pattern ---
	s.AddTool(mcp.NewTool("get_monthly_pattern",
		mcp.WithDescription("Mean concentration per calendar month across every year."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
		mcp.WithString("pollutant", mcp.Description("Pollutant. Defaults to PM2.5."), pollutantEnum),
	), h.handleGetMonthlyPattern)

	// --- 6. Tool: check_compliance ---
	s.AddTool(mcp.NewTool("check_compliance",
		mcp.WithDescription("Check a station against the WHO annual and 24-hour guidelines."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
	), h.handleCheckCompliance)

	// --- 7. Tool: compare_stations ---
	s.AddTool(mcp.NewTool("compare_stations",
		mcp.WithDescription("Compare NYC and Bogota on shared timestamps: correlation and how often NYC is higher."),
		mcp.WithString("pollutant", mcp.Description("Pollutant. Only PM2.5 is measured at both stations."), pollutantEnum),
		mcp.WithNumber("stride", mcp.Description("Keep every Nth joined record. Defaults to 6.")),
	), h.handleCompareStations)

	// --- 8. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Stats, WHO compliance and the PM2.5 comparison of both stations in one call."),
	), h.handleGetSummary)

	// --- 9. Tool: get_realtime_reading ---
	s.AddTool(mcp.NewTool("get_realtime_reading",
		mcp.WithDescription("Simulated current reading of a station, drawn from its historical statistics."),
		mcp.WithString("station", mcp.Description("Monitoring station."), stationEnum, mcp.Required()),
	), h.handleGetRealtimeReading)

	return s
}

// StartMCPServer starts the Airspot MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, ds *core.Dataset, sim *realtime.Simulator) error {
	s := NewMCPServer(baseCfg, ds, sim)
	return server.ServeStdio(s)
}
