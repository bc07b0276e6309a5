package schema

// ExceedanceRecord is a calendar day whose mean exceeded a 24-hour guideline.
type ExceedanceRecord struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	Limit      float64 `json:"limit"`
	ExceededBy float64 `json:"exceeded_by"`
}

// ComplianceReport holds the WHO guideline check for one station.
// The PM10 block is nil, and absent from JSON, for stations without PM10.
type ComplianceReport struct {
	City              Station            `json:"city"`
	PM25AnnualMean    float64            `json:"pm25_annual_mean"`
	AnnualLimit       float64            `json:"who_annual_limit"`
	AnnualCompliant   bool               `json:"annual_compliant"`
	DailyLimit        float64            `json:"who_24h_limit"`
	Exceedances       []ExceedanceRecord `json:"exceedances_24h"`
	ExceedanceCount   int                `json:"exceedance_count"`
	TotalDays         int                `json:"total_days"`
	ExceedancePercent float64            `json:"exceedance_percent"`

	*PM10Compliance
}

// PM10Compliance carries the PM10 extension of a ComplianceReport.
type PM10Compliance struct {
	PM10AnnualMean      float64 `json:"pm10_annual_mean"`
	PM10AnnualLimit     float64 `json:"who_pm10_annual_limit"`
	PM10AnnualCompliant bool    `json:"pm10_annual_compliant"`
	PM10DailyLimit      float64 `json:"who_pm10_24h_limit"`
	PM10ExceedanceCount int     `json:"pm10_exceedance_count"`
}

// Compliant reports whether every annual guideline in the report is met.
func (r ComplianceReport) Compliant() bool {
	if r.PM10Compliance != nil && !r.PM10AnnualCompliant {
		return false
	}
	return r.AnnualCompliant
}
