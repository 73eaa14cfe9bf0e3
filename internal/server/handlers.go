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

package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetsense/fleetsense/internal/analytics"
	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/pkg/helper"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fleet := s.snapshot()
	helper.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"service":      "fleetsense asset service",
		"assets_count": len(fleet),
		"model":        "heuristic",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		helper.WriteError(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	rows, err := parseSensorCSV(file)
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, fmt.Sprintf("CSV parsing error: %v", err))
		return
	}
	if len(rows) == 0 {
		helper.WriteError(w, http.StatusBadRequest, "CSV file is empty")
		return
	}

	assets := scoreAssets(rows)
	s.setFleet(assets)
	s.log.Info("ingested %d assets from %s", len(assets), header.Filename)

	healthy, warning, critical, _ := models.Snapshot(assets).Counts()
	avg := analytics.Averages(assets)
	helper.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"summary": map[string]interface{}{
			"total_assets":   len(assets),
			"healthy":        healthy,
			"warning":        warning,
			"critical":       critical,
			"avg_risk_score": round2(avg.RiskScore),
			"model_used":     "heuristic",
		},
	})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	fleet := s.snapshot()
	// Listing elides per-asset history; the detail endpoint carries it.
	out := make([]models.Asset, len(fleet))
	for i, a := range fleet {
		out[i] = a
		out[i].HistoricalData = nil
	}
	helper.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset := s.snapshot().FindByID(id)
	if asset == nil {
		helper.WriteError(w, http.StatusNotFound, "Asset not found")
		return
	}
	helper.WriteJSON(w, http.StatusOK, asset)
}

func (s *Server) handleClearAssets(w http.ResponseWriter, r *http.Request) {
	count := len(s.snapshot())
	s.setFleet(nil)
	helper.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Cleared %d assets", count),
		"cleared": count,
	})
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	fleet := s.snapshot()
	if len(fleet) == 0 {
		helper.WriteError(w, http.StatusNotFound, "No assets to report on. Upload a CSV first.")
		return
	}

	report := renderReport(fleet)
	name := fmt.Sprintf("maintenance_report_%s.txt", time.Now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write([]byte(report))
}

func renderReport(fleet models.Snapshot) string {
	healthy, warning, critical, unknown := fleet.Counts()
	avg := analytics.Averages(fleet)
	ins := analytics.Insights(fleet)

	var b strings.Builder
	fmt.Fprintf(&b, "FLEET MAINTENANCE REPORT  %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Assets: %d total  %d healthy  %d warning  %d critical", len(fleet), healthy, warning, critical)
	if unknown > 0 {
		fmt.Fprintf(&b, "  %d unclassified", unknown)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Average risk score: %.1f%%\n", avg.RiskScore)
	fmt.Fprintf(&b, "Average readings: %.1f C  %.2f mm/s  %.1f PSI\n\n", avg.Temperature, avg.Vibration, avg.Pressure)
	fmt.Fprintf(&b, "Performance: %s\n", ins.Performance)
	fmt.Fprintf(&b, "Temperature: %s\n", ins.Temperature)
	fmt.Fprintf(&b, "Vibration:   %s\n", ins.Vibration)
	fmt.Fprintf(&b, "Maintenance: %s\n\n", ins.Maintenance)

	for _, entry := range analytics.FailureTimeline(fleet, 10) {
		fmt.Fprintf(&b, "  %-24s %5.0f days to predicted failure\n", entry.Name, entry.Days)
	}
	return b.String()
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
