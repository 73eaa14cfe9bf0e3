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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fleetsense/fleetsense/internal/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestClientList(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/assets/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Asset{
			{ID: 1, Name: "Pump-1", RiskLevel: models.RiskHealthy, RiskScore: 12.5},
		})
	}))
	defer srv.Close()

	snapshot, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snapshot) != 1 || snapshot[0].Name != "Pump-1" {
		t.Fatalf("snapshot = %+v", snapshot)
	}
}

func TestClientGetNotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Asset not found"})
	}))
	defer srv.Close()

	_, err := c.Get(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Error() != "Asset not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientErrorWithoutDetail(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Error(), "500") {
		t.Errorf("fallback message should carry the status, got %q", apiErr.Error())
	}
}

func TestClientIngestProgress(t *testing.T) {
	body := strings.Repeat("a,b,c\n", 1000)
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "sensors.csv" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(models.IngestResult{
			Assets:  []models.Asset{{ID: 1, Name: "Asset-1"}},
			Summary: models.IngestSummary{Total: 1, Healthy: 1},
		})
	}))
	defer srv.Close()

	var reported []int
	result, err := c.Ingest(context.Background(), "sensors.csv", strings.NewReader(body), int64(len(body)), func(p int) {
		reported = append(reported, p)
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Summary.Total != 1 || len(result.Assets) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(reported) == 0 {
		t.Fatal("expected progress callbacks")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] <= reported[i-1] {
			t.Fatalf("progress not strictly increasing: %v", reported)
		}
	}
	last := reported[len(reported)-1]
	if last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
}

func TestClientIngestNoProgressAfterReturn(t *testing.T) {
	// The server rejects the upload without draining the body, so the
	// streaming copy is still in flight when the response arrives. Ingest
	// must join the copier before returning; a straggler callback would
	// otherwise race the caller's teardown.
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "File must be a CSV"})
	}))
	defer srv.Close()

	var returned atomic.Bool
	var lateCallback atomic.Bool
	body := strings.Repeat("x", 4<<20)
	_, err := c.Ingest(context.Background(), "big.csv", strings.NewReader(body), int64(len(body)), func(int) {
		if returned.Load() {
			lateCallback.Store(true)
		}
	})
	returned.Store(true)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("want 400 APIError, got %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if lateCallback.Load() {
		t.Fatal("progress callback ran after Ingest returned")
	}
}

func TestClientIngestUnknownSizeSuppressesProgress(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.IngestResult{})
	}))
	defer srv.Close()

	called := false
	_, err := c.Ingest(context.Background(), "sensors.csv", strings.NewReader("data"), -1, func(int) {
		called = true
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if called {
		t.Error("unknown size must suppress progress reporting")
	}
}

func TestClientExportReport(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export-report/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Disposition", `attachment; filename=maintenance_report_2026-09-01.txt`)
		w.Write([]byte("FLEET REPORT"))
	}))
	defer srv.Close()

	blob, name, err := c.ExportReport(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(blob) != "FLEET REPORT" {
		t.Errorf("blob = %q", blob)
	}
	if name != "maintenance_report_2026-09-01.txt" {
		t.Errorf("name = %q", name)
	}
}

func TestClientClear(t *testing.T) {
	var method, path string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "All assets cleared"})
	}))
	defer srv.Close()

	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if method != http.MethodDelete || path != "/assets/" {
		t.Errorf("request = %s %s", method, path)
	}
}
