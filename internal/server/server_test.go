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
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fleetsense/fleetsense/internal/config"
	"github.com/fleetsense/fleetsense/internal/models"
)

const sampleCSV = `asset_name,temperature,vibration,pressure,runtime,last_maintenance
Pump-1,72,0.9,94,1200,2026-06-01
Fan-2,98,2.6,102,5800,2025-12-15
`

func newTestServer() (*Server, http.Handler) {
	srv := NewServer(config.Default())
	return srv, srv.Handler()
}

func uploadCSV(t *testing.T, h http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload.Detail
}

func TestUploadListGetClearCycle(t *testing.T) {
	_, h := newTestServer()

	rec := uploadCSV(t, h, "sensors.csv", sampleCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}

	var uploaded struct {
		Assets  []models.Asset `json:"assets"`
		Summary struct {
			Total     int     `json:"total_assets"`
			Healthy   int     `json:"healthy"`
			Warning   int     `json:"warning"`
			Critical  int     `json:"critical"`
			AvgRisk   float64 `json:"avg_risk_score"`
			ModelUsed string  `json:"model_used"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.Summary.Total != 2 {
		t.Errorf("total_assets = %d, want 2", uploaded.Summary.Total)
	}
	if uploaded.Summary.Healthy+uploaded.Summary.Warning+uploaded.Summary.Critical != 2 {
		t.Errorf("summary counts do not cover the fleet: %+v", uploaded.Summary)
	}
	if uploaded.Summary.ModelUsed != "heuristic" {
		t.Errorf("model_used = %q", uploaded.Summary.ModelUsed)
	}
	if uploaded.Assets[0].Name != "Pump-1" || uploaded.Assets[0].RiskLevel != models.RiskHealthy {
		t.Errorf("first asset = %+v", uploaded.Assets[0])
	}
	// Far-off-nominal readings plus high runtime must not score healthy.
	if uploaded.Assets[1].RiskLevel == models.RiskHealthy {
		t.Errorf("Fan-2 scored healthy: %+v", uploaded.Assets[1])
	}

	// Listing elides history.
	req := httptest.NewRequest(http.MethodGet, "/assets/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []models.Asset
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d assets", len(listed))
	}
	if listed[0].HistoricalData != nil {
		t.Error("list response must not carry historical data")
	}

	// Detail carries the synthesized 24h history.
	req = httptest.NewRequest(http.MethodGet, "/assets/1", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var detail models.Asset
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.HistoricalData) != 24 {
		t.Errorf("history length = %d, want 24", len(detail.HistoricalData))
	}

	// Clear drops everything.
	req = httptest.NewRequest(http.MethodDelete, "/assets/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/assets/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var after []models.Asset
	json.NewDecoder(rec.Body).Decode(&after)
	if len(after) != 0 {
		t.Errorf("fleet not cleared: %d assets remain", len(after))
	}
}

func TestUploadRejectsNonCSV(t *testing.T) {
	_, h := newTestServer()

	rec := uploadCSV(t, h, "sensors.txt", sampleCSV)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "File must be a CSV" {
		t.Errorf("detail = %q", got)
	}
}

func TestUploadRejectsEmptyCSV(t *testing.T) {
	_, h := newTestServer()

	rec := uploadCSV(t, h, "sensors.csv", "asset_name,temperature\n")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "CSV file is empty" {
		t.Errorf("detail = %q", got)
	}
}

func TestGetAssetNotFound(t *testing.T) {
	_, h := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/assets/42", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Asset not found" {
		t.Errorf("detail = %q", got)
	}
}

func TestExportReport(t *testing.T) {
	_, h := newTestServer()

	// Empty fleet refuses to export.
	req := httptest.NewRequest(http.MethodGet, "/export-report/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty export status = %d, want 404", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "No assets to report on. Upload a CSV first." {
		t.Errorf("detail = %q", got)
	}

	if rec := uploadCSV(t, h, "sensors.csv", sampleCSV); rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/export-report/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "maintenance_report_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "FLEET MAINTENANCE REPORT") || !strings.Contains(body, "Pump-1") {
		t.Errorf("report body missing expected sections:\n%s", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field = %v", payload["status"])
	}
}
