package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// PrintRealtimeReadings outputs simulated readings of one station.
func PrintRealtimeReadings(readings []schema.RealtimeReading, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "realtime readings", renderers{
		json: func(w io.Writer) error { return writeJSON(w, readings) },
		csv: func(w io.Writer) error {
			header := []string{"timestamp", "city", "pm25", "aqi_level", "who_compliant", "alert", "trend", "pm10"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range readings {
					pm10 := ""
					if r.PM10 != nil {
						pm10 = fmtFloat(*r.PM10)
					}
					row := []string{
						r.Timestamp.Format(time.RFC3339),
						r.City.String(),
						fmtFloat(r.PM25),
						r.AQICategory.Level,
						strconv.FormatBool(r.WHOCompliant),
						strconv.FormatBool(r.Alert),
						string(r.Trend),
						pm10,
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error { return writeRealtimeTable(w, readings, cfg, fmtFloat) },
	})
}

func writeRealtimeTable(w io.Writer, readings []schema.RealtimeReading, cfg *contract.Config, fmtFloat func(float64) string) error {
	label, aqi := labels(cfg)
	trend := func(t schema.Trend) string { return string(t) }
	if cfg.UseColors {
		trend = contract.GetColorTrend
	}

	data := make([][]string, 0, len(readings))
	for _, r := range readings {
		pm10 := "-"
		if r.PM10 != nil {
			pm10 = fmtFloat(*r.PM10)
		}
		data = append(data, []string{
			r.Timestamp.Format(time.TimeOnly),
			fmtFloat(r.PM25),
			aqi(r.AQICategory.Level),
			label(r.WHOCompliant),
			contract.GetAlertLabel(r.Alert),
			trend(r.Trend),
			pm10,
		})
	}
	return renderTable(w, []string{"Time", "PM2.5", "AQI", "WHO", "24h", "Trend", "PM10"}, data)
}

// PrintCityAirQuality outputs the current air quality of one or more cities.
func PrintCityAirQuality(cities []schema.CityAirQuality, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	var payload any = cities
	if len(cities) == 1 {
		payload = cities[0]
	}
	return dispatch(cfg, "city air quality", renderers{
		json: func(w io.Writer) error { return writeJSON(w, payload) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, airQualityHeader, func(cw *csv.Writer) error {
				for _, c := range cities {
					if err := cw.Write(airQualityRow(c.Location.Name, c.Location.Country, c.Location.Lat, c.Location.Lon, c.AirQuality, fmtFloat)); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error {
			rows := make([]schema.AirQuality, len(cities))
			names := make([]string, len(cities))
			for i, c := range cities {
				rows[i] = c.AirQuality
				names[i] = c.Location.Name
				if c.Location.Country != "" {
					names[i] += ", " + c.Location.Country
				}
			}
			return writeAirQualityTable(w, names, rows, cfg, fmtFloat)
		},
	})
}

// PrintCoordinatesAirQuality outputs the current air quality at a point.
func PrintCoordinatesAirQuality(result schema.CoordinatesAirQuality, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	name := fmt.Sprintf("%.4f, %.4f", result.Coordinates.Lat, result.Coordinates.Lon)
	return dispatch(cfg, "coordinate air quality", renderers{
		json: func(w io.Writer) error { return writeJSON(w, result) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, airQualityHeader, func(cw *csv.Writer) error {
				return cw.Write(airQualityRow("", "", result.Coordinates.Lat, result.Coordinates.Lon, result.AirQuality, fmtFloat))
			})
		},
		table: func(w io.Writer) error {
			return writeAirQualityTable(w, []string{name}, []schema.AirQuality{result.AirQuality}, cfg, fmtFloat)
		},
	})
}

var airQualityHeader = []string{"name", "country", "lat", "lon", "aqi", "aqi_level", "pm2_5", "pm10", "no2", "so2", "co", "o3", "nh3", "who_pm25_compliant", "who_pm10_compliant"}

func airQualityRow(name, country string, lat, lon float64, aq schema.AirQuality, fmtFloat func(float64) string) []string {
	return []string{
		name,
		country,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		strconv.Itoa(aq.AQI),
		aq.AQILevel.Level,
		fmtFloat(aq.PM25),
		fmtFloat(aq.PM10),
		fmtFloat(aq.NO2),
		fmtFloat(aq.SO2),
		fmtFloat(aq.CO),
		fmtFloat(aq.O3),
		fmtFloat(aq.NH3),
		strconv.FormatBool(aq.WHOPM25Compliant),
		strconv.FormatBool(aq.WHOPM10Compliant),
	}
}

func writeAirQualityTable(w io.Writer, names []string, rows []schema.AirQuality, cfg *contract.Config, fmtFloat func(float64) string) error {
	label, aqi := labels(cfg)
	data := make([][]string, 0, len(rows))
	for i, aq := range rows {
		data = append(data, []string{
			names[i],
			fmt.Sprintf("%d %s", aq.AQI, aqi(aq.AQILevel.Level)),
			fmtFloat(aq.PM25),
			label(aq.WHOPM25Compliant),
			fmtFloat(aq.PM10),
			label(aq.WHOPM10Compliant),
			fmtFloat(aq.NO2),
			fmtFloat(aq.O3),
		})
	}
	return renderTable(w, []string{"Location", "AQI", "PM2.5", "WHO 24h", "PM10", "WHO 24h", "NO2", "O3"}, data)
}

// PrintCityForecast outputs the hourly forecast of a city.
func PrintCityForecast(result schema.CityForecast, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "forecast", renderers{
		json: func(w io.Writer) error { return writeJSON(w, result) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"timestamp", "aqi", "aqi_level", "pm2_5", "pm10", "no2", "so2"}, func(cw *csv.Writer) error {
				for _, f := range result.Forecast {
					row := []string{
						f.Timestamp.Format(time.RFC3339),
						strconv.Itoa(f.AQI),
						f.AQILevel.Level,
						fmtFloat(f.PM25),
						fmtFloat(f.PM10),
						fmtFloat(f.NO2),
						fmtFloat(f.SO2),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error {
			_, aqi := labels(cfg)
			data := make([][]string, 0, len(result.Forecast))
			for _, f := range result.Forecast {
				data = append(data, []string{
					f.Timestamp.Format("Mon 15:04"),
					fmt.Sprintf("%d %s", f.AQI, aqi(f.AQILevel.Level)),
					fmtFloat(f.PM25),
					fmtFloat(f.PM10),
					fmtFloat(f.NO2),
					fmtFloat(f.SO2),
				})
			}
			if err := renderTable(w, []string{"Time", "AQI", "PM2.5", "PM10", "NO2", "SO2"}, data); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Forecast for %s, %s (%.4f, %.4f)\n", result.Location.Name, result.Location.Country, result.Location.Lat, result.Location.Lon)
			return err
		},
	})
}
