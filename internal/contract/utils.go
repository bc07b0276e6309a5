package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/airspot/schema"
)

// Compliance label constants.
const (
	CompliantValue = "Compliant"
	ExceededValue  = "Exceeded"
	AlertValue     = "Alert"
	NormalValue    = "Normal"
)

// Color variables for console output.
var (
	ExceededColor  = color.New(color.FgRed, color.Bold)
	CompliantColor = color.New(color.FgGreen)
	CautionColor   = color.New(color.FgYellow)
	SevereColor    = color.New(color.FgMagenta, color.Bold)
	InfoColor      = color.New(color.FgCyan)
)

// GetComplianceLabel returns a plain text label for a guideline check.
func GetComplianceLabel(compliant bool) string {
	if compliant {
		return CompliantValue
	}
	return ExceededValue
}

// GetColorComplianceLabel returns GetComplianceLabel colored for table output.
func GetColorComplianceLabel(compliant bool) string {
	text := GetComplianceLabel(compliant)
	if compliant {
		return CompliantColor.Sprint(text)
	}
	return ExceededColor.Sprint(text)
}

// GetAlertLabel returns a plain text label for a realtime alert flag.
func GetAlertLabel(alert bool) string {
	if alert {
		return AlertValue
	}
	return NormalValue
}

// GetColorAQILabel colors an AQI level name by severity. Both the US EPA categories of
// the simulator and the 1-5 scale of OpenWeatherMap are recognized.
func GetColorAQILabel(level string) string {
	switch level {
	case "Good":
		return CompliantColor.Sprint(level)
	case "Fair", "Moderate":
		return CautionColor.Sprint(level)
	case "Unhealthy for Sensitive Groups", "Poor":
		return SevereColor.Sprint(level)
	case "Unhealthy", "Very Unhealthy", "Hazardous", "Very Poor":
		return ExceededColor.Sprint(level)
	default:
		return InfoColor.Sprint(level)
	}
}

// GetColorTrend colors a realtime trend.
func GetColorTrend(t schema.Trend) string {
	switch t {
	case schema.TrendRising:
		return ExceededColor.Sprint(string(t))
	case schema.TrendFalling:
		return CompliantColor.Sprint(string(t))
	default:
		return InfoColor.Sprint(string(t))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the default SQLite DB file for stored readings.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".airspot.db"
	}
	return filepath.Join(homeDir, ".airspot.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
