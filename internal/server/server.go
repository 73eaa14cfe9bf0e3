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

// Package server is a self-contained asset service implementing the
// contract the dashboard consumes, so the TUI runs end-to-end without
// external infrastructure. The fleet lives in memory and is replaced
// wholesale by each upload; nothing survives a restart.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetsense/fleetsense/internal/config"
	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/pkg/logger"
)

type Server struct {
	cfg        *config.Config
	log        *logger.Logger
	httpServer *http.Server

	mu    sync.RWMutex
	fleet models.Snapshot
}

func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg, log: logger.With("HTTP")}
}

func (s *Server) Start() error {
	router := s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Serve.Host, s.cfg.Serve.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("Asset service on %s:%d", s.cfg.Serve.Host, s.cfg.Serve.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHealth).Methods("GET")
	r.HandleFunc("/upload/", s.handleUpload).Methods("POST")
	r.HandleFunc("/assets/", s.handleListAssets).Methods("GET")
	r.HandleFunc("/assets/", s.handleClearAssets).Methods("DELETE")
	r.HandleFunc("/assets/{id:[0-9]+}", s.handleGetAsset).Methods("GET")
	r.HandleFunc("/export-report/", s.handleExportReport).Methods("GET")
	return s.recovery(s.logging(r))
}

// Handler exposes the routed handler directly, for tests.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

func (s *Server) snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fleet
}

func (s *Server) setFleet(fleet models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fleet = fleet
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic serving %s: %v", r.URL.Path, rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
