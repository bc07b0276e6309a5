package core

import (
	"github.com/huangsam/airspot/schema"
	"gonum.org/v1/gonum/stat"
)

// pollutantCheck is the per-pollutant part of a compliance report.
type pollutantCheck struct {
	annualMean  float64
	totalDays   int
	exceedances []schema.ExceedanceRecord
}

// CheckLimits evaluates a station against the WHO guidelines.
//
// The annual mean comes from the raw readings. Exceedances are judged on daily means,
// a day counting when its mean is strictly above the 24-hour guideline. PM10 fields are
// filled only for stations that measure PM10. A series without readings fails with
// EmptySeriesError rather than reporting a 0/0 percentage.
func CheckLimits(s *Series) (schema.ComplianceReport, error) {
	pm25, err := checkPollutant(s, schema.PM25)
	if err != nil {
		return schema.ComplianceReport{}, err
	}

	report := schema.ComplianceReport{
		City:              s.station,
		PM25AnnualMean:    pm25.annualMean,
		AnnualLimit:       schema.WHOPM25Annual,
		AnnualCompliant:   pm25.annualMean <= schema.WHOPM25Annual,
		DailyLimit:        schema.WHOPM25Daily,
		Exceedances:       pm25.exceedances,
		ExceedanceCount:   len(pm25.exceedances),
		TotalDays:         pm25.totalDays,
		ExceedancePercent: percent(len(pm25.exceedances), pm25.totalDays),
	}

	if s.Carries(schema.PM10) {
		pm10, err := checkPollutant(s, schema.PM10)
		if err != nil {
			return schema.ComplianceReport{}, err
		}
		report.PM10Compliance = &schema.PM10Compliance{
			PM10AnnualMean:      pm10.annualMean,
			PM10AnnualLimit:     schema.WHOPM10Annual,
			PM10AnnualCompliant: pm10.annualMean <= schema.WHOPM10Annual,
			PM10DailyLimit:      schema.WHOPM10Daily,
			PM10ExceedanceCount: len(pm10.exceedances),
		}
	}
	return report, nil
}

func checkPollutant(s *Series, p schema.Pollutant) (pollutantCheck, error) {
	if err := s.require(p); err != nil {
		return pollutantCheck{}, err
	}
	if len(s.readings) == 0 {
		return pollutantCheck{}, &schema.EmptySeriesError{Station: s.station, Op: "check limits"}
	}

	daily, err := DailyAverages(s, p)
	if err != nil {
		return pollutantCheck{}, err
	}

	limit := p.DailyLimit()
	exceedances := make([]schema.ExceedanceRecord, 0)
	for _, d := range daily {
		if d.Value > limit {
			exceedances = append(exceedances, schema.ExceedanceRecord{
				Date:       d.Date,
				Value:      d.Value,
				Limit:      limit,
				ExceededBy: d.Value - limit,
			})
		}
	}

	return pollutantCheck{
		annualMean:  stat.Mean(s.values(p), nil),
		totalDays:   len(daily),
		exceedances: exceedances,
	}, nil
}

// percent expects whole > 0; callers reject empty inputs first.
func percent(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
