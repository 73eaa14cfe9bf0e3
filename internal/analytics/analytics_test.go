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

package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/fleetsense/fleetsense/internal/models"
)

func asset(name string, level models.RiskLevel, temp, vib, press, score, fail float64) models.Asset {
	return models.Asset{
		Name:             name,
		RiskLevel:        level,
		Temperature:      temp,
		Vibration:        vib,
		Pressure:         press,
		RiskScore:        score,
		PredictedFailure: fail,
	}
}

func TestRiskDistributionOnePerBucket(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("b", models.RiskWarning, 80, 1.2, 96, 50, 15),
		asset("c", models.RiskCritical, 95, 2.1, 99, 90, 3),
	}

	dist := RiskDistribution(s)
	if len(dist) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(dist))
	}
	want := map[string]int{"Healthy": 1, "Warning": 1, "Critical": 1}
	for _, e := range dist {
		if e.Value != want[e.Name] {
			t.Errorf("bucket %s = %d, want %d", e.Name, e.Value, want[e.Name])
		}
	}
}

func TestRiskDistributionExcludesUnrecognizedLevels(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("b", models.RiskLevel("degraded"), 80, 1.2, 96, 50, 15),
	}

	sum := 0
	for _, e := range RiskDistribution(s) {
		sum += e.Value
	}
	if sum > len(s) {
		t.Fatalf("bucket sum %d exceeds snapshot length %d", sum, len(s))
	}
	if sum != 1 {
		t.Fatalf("expected 1 classified asset, got %d", sum)
	}
	if got := Unclassified(s); got != 1 {
		t.Fatalf("Unclassified = %d, want 1", got)
	}
}

func TestAverageSensorReadingsEmptySnapshot(t *testing.T) {
	avg := AverageSensorReadings(nil)
	if avg.Temperature != 0 || avg.Vibration != 0 || avg.Pressure != 0 {
		t.Fatalf("empty snapshot should average to zeros, got %+v", avg)
	}
}

func TestAverageSensorReadingsScalesVibration(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 70, 1.0, 90, 10, 25),
		asset("b", models.RiskHealthy, 80, 2.0, 100, 10, 25),
	}
	avg := AverageSensorReadings(s)
	if avg.Temperature != 75 {
		t.Errorf("avg temperature = %v, want 75", avg.Temperature)
	}
	if avg.Vibration != 1.5*VibrationChartScale {
		t.Errorf("avg vibration = %v, want %v", avg.Vibration, 1.5*VibrationChartScale)
	}
	if avg.Pressure != 95 {
		t.Errorf("avg pressure = %v, want 95", avg.Pressure)
	}
}

func TestSensorRangeStatistics(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 60, 0.5, 90, 10, 25),
		asset("b", models.RiskHealthy, 90, 2.5, 100, 10, 25),
	}
	ranges, ok := SensorRangeStatistics(s)
	if !ok {
		t.Fatal("expected defined ranges for non-empty snapshot")
	}
	temp := ranges[0]
	if temp.Min != 60 || temp.Max != 90 || temp.Avg != 75 {
		t.Errorf("temperature range = %+v, want min 60 max 90 avg 75", temp)
	}
}

func TestSensorRangeStatisticsEmpty(t *testing.T) {
	if _, ok := SensorRangeStatistics(nil); ok {
		t.Fatal("empty snapshot must report undefined ranges")
	}
}

func TestRiskTrendPreservesSnapshotOrder(t *testing.T) {
	s := models.Snapshot{
		asset("high", models.RiskCritical, 95, 2, 99, 90, 3),
		asset("low", models.RiskHealthy, 70, 1, 95, 10, 25),
	}
	trend := RiskTrend(s)
	if len(trend) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend))
	}
	if trend[0].Name != "high" || trend[0].Index != 1 {
		t.Errorf("first point = %+v, want high at index 1", trend[0])
	}
	if trend[1].Index != 2 {
		t.Errorf("index must be 1-based snapshot order, got %d", trend[1].Index)
	}
}

func TestFailureTimelineSortedAndLimited(t *testing.T) {
	var s models.Snapshot
	days := []float64{14, 3, 28, 9, 3, 21, 1, 30, 12, 6, 18, 5}
	for i, d := range days {
		s = append(s, asset(string(rune('a'+i)), models.RiskHealthy, 70, 1, 95, 10, d))
	}

	timeline := FailureTimeline(s, 10)
	if len(timeline) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Days < timeline[i-1].Days {
			t.Fatalf("timeline not ascending at %d: %v then %v", i, timeline[i-1].Days, timeline[i].Days)
		}
	}
	// Ties broken by snapshot order: "b" (index 1) before "e" (index 4),
	// both at 3 days.
	if timeline[1].Name != "b" || timeline[2].Name != "e" {
		t.Errorf("tie order = %s, %s; want b then e", timeline[1].Name, timeline[2].Name)
	}
}

func TestFailureTimelineShorterThanLimit(t *testing.T) {
	s := models.Snapshot{asset("only", models.RiskHealthy, 70, 1, 95, 10, 12)}
	timeline := FailureTimeline(s, 10)
	if len(timeline) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(timeline))
	}
}

func TestInsightsUrgentAndElevated(t *testing.T) {
	s := models.Snapshot{
		asset("Pump-7", models.RiskCritical, 92, 1.5, 99, 90, 3),
		asset("Fan-2", models.RiskHealthy, 88, 1.2, 95, 20, 20),
	}

	ins := Insights(s)
	if !strings.Contains(ins.Temperature, "Elevated") {
		t.Errorf("avg temperature 90 should be elevated, got %q", ins.Temperature)
	}
	if !ins.Urgent {
		t.Fatal("3-day predicted failure should be urgent")
	}
	if !strings.Contains(ins.Maintenance, "Pump-7") {
		t.Errorf("urgent insight should name the soonest-failing asset, got %q", ins.Maintenance)
	}
}

func TestInsightsHealthyMajority(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("b", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("c", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("d", models.RiskCritical, 95, 2, 99, 90, 8),
	}
	ins := Insights(s)
	if !strings.Contains(ins.Performance, "Excellent") {
		t.Errorf("3 of 4 healthy should be excellent, got %q", ins.Performance)
	}
	if ins.Urgent {
		t.Error("8-day horizon should not be urgent")
	}
}

func TestInsightsConcerning(t *testing.T) {
	s := models.Snapshot{
		asset("a", models.RiskHealthy, 70, 1, 95, 10, 25),
		asset("b", models.RiskWarning, 80, 1.3, 95, 50, 15),
		asset("c", models.RiskCritical, 95, 2, 99, 90, 9),
		asset("d", models.RiskCritical, 96, 2.2, 99, 92, 10),
	}
	ins := Insights(s)
	if !strings.Contains(ins.Performance, "Concerning") {
		t.Errorf("2 of 4 critical should be concerning, got %q", ins.Performance)
	}
}

func TestAverages(t *testing.T) {
	s := models.Snapshot{
		{Name: "a", RiskScore: 20, Temperature: 70, Vibration: 1, Pressure: 90, Runtime: 1000},
		{Name: "b", RiskScore: 40, Temperature: 80, Vibration: 2, Pressure: 100, Runtime: 3000},
	}
	avg := Averages(s)
	if avg.RiskScore != 30 || avg.Runtime != 2000 {
		t.Errorf("averages = %+v, want risk 30 runtime 2000", avg)
	}
	if math.Abs(avg.Vibration-1.5) > 1e-9 {
		t.Errorf("avg vibration = %v, want unscaled 1.5", avg.Vibration)
	}
}
