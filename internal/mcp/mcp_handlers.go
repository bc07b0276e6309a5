package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/huangsam/airspot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	ds      *core.Dataset
	sim     *realtime.Simulator
}

// stationArgs resolves the station and pollutant arguments of a request.
func (h *toolHandler) stationArgs(request mcp.CallToolRequest) (*core.Series, schema.Pollutant, error) {
	series, err := h.ds.Lookup(request.GetString("station", ""))
	if err != nil {
		return nil, "", err
	}
	p, err := h.pollutantArg(request)
	if err != nil {
		return nil, "", err
	}
	return series, p, nil
}

func (h *toolHandler) pollutantArg(request mcp.CallToolRequest) (schema.Pollutant, error) {
	if raw := request.GetString("pollutant", ""); raw != "" {
		return schema.ParsePollutant(raw)
	}
	if h.baseCfg.Pollutant == "" {
		return schema.PM25, nil
	}
	return h.baseCfg.Pollutant, nil
}

func strideArg(request mcp.CallToolRequest, fallback int) (int, error) {
	stride := request.GetInt("stride", fallback)
	if stride < 1 {
		return 0, fmt.Errorf("stride must be at least 1 (received %d)", stride)
	}
	return stride, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStationStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := h.ds.Lookup(request.GetString("station", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	stats, err := core.StationStats(series)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	return jsonResult(stats)
}

func (h *toolHandler) handleGetTimeseries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stride, err := strideArg(request, contract.DefaultTimeseriesStride)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid timeseries parameters: %v", err)), nil
	}
	series, p, err := h.stationArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeseries failed: %v", err)), nil
	}
	result, err := core.SampledSeries(series, p, stride)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeseries failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetDailyAverages(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, p, err := h.stationArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("daily averages failed: %v", err)), nil
	}
	result, err := core.DailyView(series, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("daily averages failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetHourlyPattern(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, p, err := h.stationArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hourly pattern failed: %v", err)), nil
	}
	result, err := core.HourlyView(series, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hourly pattern failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetMonthlyPattern(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, p, err := h.stationArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("monthly pattern failed: %v", err)), nil
	}
	result, err := core.MonthlyView(series, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("monthly pattern failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCheckCompliance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := h.ds.Lookup(request.GetString("station", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compliance check failed: %v", err)), nil
	}
	report, err := core.CheckLimits(series)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compliance check failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleCompareStations(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stride, err := strideArg(request, contract.DefaultTimeseriesStride)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}
	p, err := h.pollutantArg(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}
	result, err := core.CompareStations(h.ds, p, stride)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetSummary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := core.SampledSummary(h.ds, contract.DefaultSummaryStride)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(summary)
}

func (h *toolHandler) handleGetRealtimeReading(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.sim == nil {
		return mcp.NewToolResultError("realtime reading failed: simulator is not configured"), nil
	}
	station, err := schema.ParseStation(request.GetString("station", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("realtime reading failed: %v", err)), nil
	}
	reading, err := h.sim.Reading(station)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("realtime reading failed: %v", err)), nil
	}
	return jsonResult(reading)
}
