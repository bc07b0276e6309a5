package schema

import "time"

// ComparisonRecord is one timestamp present in both compared series.
type ComparisonRecord struct {
	Time     time.Time `json:"-"`
	Date     string    `json:"date"`
	A        float64   `json:"a"`
	B        float64   `json:"b"`
	AGreater bool      `json:"a_greater"`
}

// ComparisonResult holds the cross-station comparison of one pollutant.
type ComparisonResult struct {
	StationA       Station            `json:"station_a"`
	StationB       Station            `json:"station_b"`
	Pollutant      Pollutant          `json:"pollutant"`
	Correlation    float64            `json:"correlation"`
	GreaterCount   int                `json:"greater_count"`
	TotalCount     int                `json:"total_count"`
	GreaterPercent float64            `json:"greater_percent"`
	Records        []ComparisonRecord `json:"comparison_data"`
}

// WithRecords returns a copy of the result carrying the given records.
// Counts and correlation still describe the full join.
func (c ComparisonResult) WithRecords(records []ComparisonRecord) ComparisonResult {
	c.Records = records
	return c
}

// Summary is the combined view of both stations.
type Summary struct {
	NYCStats         StationStats     `json:"nyc_stats"`
	BogotaStats      StationStats     `json:"bogota_stats"`
	NYCCompliance    ComplianceReport `json:"nyc_who_limits"`
	BogotaCompliance ComplianceReport `json:"bogota_who_limits"`
	Comparison       ComparisonResult `json:"comparison"`
}
