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

package models

// RiskLevel is the coarse health classification of an asset. The scoring
// service may emit values outside the three known levels; those are carried
// through unchanged and reported as unclassified by the aggregations.
type RiskLevel string

const (
	RiskHealthy  RiskLevel = "healthy"
	RiskWarning  RiskLevel = "warning"
	RiskCritical RiskLevel = "critical"
)

// Known reports whether the level is one of the three recognized values.
func (r RiskLevel) Known() bool {
	switch r {
	case RiskHealthy, RiskWarning, RiskCritical:
		return true
	}
	return false
}

// HistoricalPoint is one time-series sample of an asset's sensor readings.
type HistoricalPoint struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Vibration   float64 `json:"vibration"`
	Pressure    float64 `json:"pressure"`
}

// Asset is one monitored machine. Sensor units: temperature in °C,
// vibration in mm/s, pressure in PSI. RiskScore and RiskLevel are supplied
// independently by the scoring service; no consistency between them is
// enforced here.
type Asset struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	RiskLevel        RiskLevel         `json:"riskLevel"`
	Temperature      float64           `json:"temperature"`
	Vibration        float64           `json:"vibration"`
	Pressure         float64           `json:"pressure"`
	RiskScore        float64           `json:"riskScore"`
	Runtime          float64           `json:"runtime"`
	PredictedFailure float64           `json:"predictedFailure"`
	LastMaintenance  string            `json:"lastMaintenance"`
	HistoricalData   []HistoricalPoint `json:"historicalData,omitempty"`
}

// Snapshot is one complete, immutable view of the fleet. Order is the
// ingestion order and is preserved for stable rendering. A snapshot is
// never mutated in place; every accepted update produces a new one.
type Snapshot []Asset

// FindByID returns the asset with the given id, or nil.
func (s Snapshot) FindByID(id int) *Asset {
	for i := range s {
		if s[i].ID == id {
			return &s[i]
		}
	}
	return nil
}

// Counts tallies assets per risk level. Unrecognized levels land in
// unknown.
func (s Snapshot) Counts() (healthy, warning, critical, unknown int) {
	for _, a := range s {
		switch a.RiskLevel {
		case RiskHealthy:
			healthy++
		case RiskWarning:
			warning++
		case RiskCritical:
			critical++
		default:
			unknown++
		}
	}
	return
}

// IngestSummary is the ephemeral result of one ingestion. The counts are
// server-provided and trusted as-is.
type IngestSummary struct {
	Total    int `json:"total_assets"`
	Healthy  int `json:"healthy"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

// IngestResult is the wire shape of a completed upload: the full new fleet
// plus the pre-aggregated summary.
type IngestResult struct {
	Assets  []Asset       `json:"assets"`
	Summary IngestSummary `json:"summary"`
}

// Chart colors for the three risk buckets, matching the web dashboard.
const (
	ColorHealthy  = "#10b981"
	ColorWarning  = "#f59e0b"
	ColorCritical = "#ef4444"
)

// RiskDistributionEntry is one bucket of the fleet risk distribution.
type RiskDistributionEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}
