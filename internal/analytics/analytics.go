/*
 * Copyright (C) 2026 FleetSense Authors
 *
 * This file is part of fleetsense.
 *
 * fleetsense is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * fleetsense is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with fleetsense. If not, see the LICENSE file in the project root.
 */

// Package analytics derives fleet metrics from a snapshot. Every function
// is pure and recomputes from scratch on each call; callers own
// invalidation by simply calling again.
package analytics

import (
	"fmt"
	"sort"

	"github.com/fleetsense/fleetsense/internal/models"
)

// Fixed thresholds behind the qualitative insights.
const (
	healthyMajorityRatio = 0.6
	concerningCritRatio  = 0.2
	elevatedTempCelsius  = 85.0
	highVibrationMMS     = 1.8
	urgentFailureDays    = 7.0
)

// VibrationChartScale brings average vibration (mm/s, typically ~1) onto
// the same axis as temperature and pressure in bar charts. Presentation
// convention only; raw averages elsewhere are unscaled.
const VibrationChartScale = 20.0

// RiskDistribution counts assets per recognized risk level. Assets with an
// unrecognized level fall outside all three buckets; Unclassified reports
// how many were excluded so the skew is visible.
func RiskDistribution(s models.Snapshot) []models.RiskDistributionEntry {
	healthy, warning, critical, _ := s.Counts()
	return []models.RiskDistributionEntry{
		{Name: "Healthy", Value: healthy, Color: models.ColorHealthy},
		{Name: "Warning", Value: warning, Color: models.ColorWarning},
		{Name: "Critical", Value: critical, Color: models.ColorCritical},
	}
}

// Unclassified returns the number of assets excluded from the risk
// distribution because their level is unrecognized.
func Unclassified(s models.Snapshot) int {
	_, _, _, unknown := s.Counts()
	return unknown
}

// SensorAverages are fleet-wide arithmetic means. Vibration carries the
// chart scaling; see VibrationChartScale.
type SensorAverages struct {
	Temperature float64
	Vibration   float64
	Pressure    float64
}

// AverageSensorReadings computes mean sensor values across the fleet, with
// vibration scaled for charting. An empty snapshot yields zeros rather
// than NaN so charts stay well-defined.
func AverageSensorReadings(s models.Snapshot) SensorAverages {
	if len(s) == 0 {
		return SensorAverages{}
	}
	var t, v, p float64
	for _, a := range s {
		t += a.Temperature
		v += a.Vibration
		p += a.Pressure
	}
	n := float64(len(s))
	return SensorAverages{
		Temperature: t / n,
		Vibration:   v / n * VibrationChartScale,
		Pressure:    p / n,
	}
}

// SensorRange is min/max/avg of one sensor across the fleet.
type SensorRange struct {
	Sensor string
	Min    float64
	Max    float64
	Avg    float64
}

// SensorRangeStatistics computes per-sensor ranges. The second return is
// false on an empty snapshot, where min and max are undefined and callers
// must special-case rather than read the zero values.
func SensorRangeStatistics(s models.Snapshot) ([]SensorRange, bool) {
	if len(s) == 0 {
		return nil, false
	}

	ranges := []SensorRange{
		{Sensor: "Temperature"},
		{Sensor: "Vibration"},
		{Sensor: "Pressure"},
	}
	read := func(a models.Asset, i int) float64 {
		switch i {
		case 0:
			return a.Temperature
		case 1:
			return a.Vibration
		default:
			return a.Pressure
		}
	}

	for i := range ranges {
		min, max, sum := read(s[0], i), read(s[0], i), 0.0
		for _, a := range s {
			v := read(a, i)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		ranges[i].Min = min
		ranges[i].Max = max
		ranges[i].Avg = sum / float64(len(s))
	}
	return ranges, true
}

// RiskTrendPoint is one asset's risk score positioned by ingestion order.
type RiskTrendPoint struct {
	Name  string
	Risk  float64
	Index int
}

// RiskTrend lists risk scores in snapshot order with a 1-based index. The
// sequence is deliberately unsorted; it visualizes risk across the fleet
// as ingested.
func RiskTrend(s models.Snapshot) []RiskTrendPoint {
	points := make([]RiskTrendPoint, len(s))
	for i, a := range s {
		points[i] = RiskTrendPoint{Name: a.Name, Risk: a.RiskScore, Index: i + 1}
	}
	return points
}

// FailureEntry is one asset's predicted days until failure.
type FailureEntry struct {
	Name string
	Days float64
}

// FailureTimeline returns the limit assets closest to predicted failure,
// ascending, ties broken by snapshot order.
func FailureTimeline(s models.Snapshot, limit int) []FailureEntry {
	entries := make([]FailureEntry, len(s))
	for i, a := range s {
		entries[i] = FailureEntry{Name: a.Name, Days: a.PredictedFailure}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Days < entries[j].Days
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// FleetInsights are four independent qualitative judgments over the
// aggregates.
type FleetInsights struct {
	Performance string
	Temperature string
	Vibration   string
	Maintenance string
	Urgent      bool
}

// Insights applies the fixed threshold rules. Ratios divide by the total
// fleet size, unclassified assets included, matching the upstream
// dashboard's arithmetic.
func Insights(s models.Snapshot) FleetInsights {
	healthy, _, critical, _ := s.Counts()
	total := float64(len(s))

	var ins FleetInsights

	switch {
	case float64(healthy) > total*healthyMajorityRatio:
		ins.Performance = "Excellent - majority of assets healthy"
	case float64(critical) > total*concerningCritRatio:
		ins.Performance = "Concerning - high number of critical assets"
	default:
		ins.Performance = "Moderate - focus on preventive maintenance"
	}

	avg := AverageSensorReadings(s)
	if avg.Temperature > elevatedTempCelsius {
		ins.Temperature = "Elevated - check cooling systems"
	} else {
		ins.Temperature = "Normal operating range"
	}

	rawVibration := avg.Vibration / VibrationChartScale
	if rawVibration > highVibrationMMS {
		ins.Vibration = "High - inspect bearings and alignment"
	} else {
		ins.Vibration = "Within acceptable limits"
	}

	timeline := FailureTimeline(s, 1)
	if len(timeline) > 0 && timeline[0].Days < urgentFailureDays {
		ins.Urgent = true
		ins.Maintenance = fmt.Sprintf("URGENT: %s needs immediate attention", timeline[0].Name)
	} else {
		ins.Maintenance = "Schedule routine maintenance as planned"
	}

	return ins
}

// FleetAverages are the statistics-view header figures.
type FleetAverages struct {
	RiskScore   float64
	Temperature float64
	Vibration   float64
	Pressure    float64
	Runtime     float64
}

// Averages computes unscaled fleet means for the statistics header; zeros
// on an empty snapshot.
func Averages(s models.Snapshot) FleetAverages {
	if len(s) == 0 {
		return FleetAverages{}
	}
	var out FleetAverages
	for _, a := range s {
		out.RiskScore += a.RiskScore
		out.Temperature += a.Temperature
		out.Vibration += a.Vibration
		out.Pressure += a.Pressure
		out.Runtime += a.Runtime
	}
	n := float64(len(s))
	out.RiskScore /= n
	out.Temperature /= n
	out.Vibration /= n
	out.Pressure /= n
	out.Runtime /= n
	return out
}
