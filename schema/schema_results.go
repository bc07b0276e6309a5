package schema

// SeriesResult is a downsampled time series of one station and pollutant.
type SeriesResult struct {
	Station   Station   `json:"station"`
	Pollutant Pollutant `json:"pollutant"`
	Stride    int       `json:"stride"`
	Points    []Point   `json:"data"`
}

// DailyResult holds the daily averages of one station and pollutant.
type DailyResult struct {
	Station   Station        `json:"station"`
	Pollutant Pollutant      `json:"pollutant"`
	Days      []DailyAverage `json:"data"`
}

// HourlyResult holds the hour-of-day pattern of one station and pollutant.
type HourlyResult struct {
	Station   Station         `json:"station"`
	Pollutant Pollutant       `json:"pollutant"`
	Hours     []HourlyAverage `json:"data"`
}

// MonthlyResult holds the month-of-year pattern of one station and pollutant.
type MonthlyResult struct {
	Station   Station          `json:"station"`
	Pollutant Pollutant        `json:"pollutant"`
	Months    []MonthlyAverage `json:"data"`
}
