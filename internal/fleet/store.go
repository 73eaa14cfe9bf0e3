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

package fleet

import (
	"context"
	"io"
	"sync"

	"github.com/fleetsense/fleetsense/internal/models"
)

// Service is the slice of the asset service the store depends on.
type Service interface {
	List(ctx context.Context) (models.Snapshot, error)
	Get(ctx context.Context, id int) (models.Asset, error)
	Ingest(ctx context.Context, filename string, file io.Reader, size int64, onProgress func(int)) (*models.IngestResult, error)
}

// Store is the single source of truth for the fleet snapshot, the selected
// asset, and the request lifecycle flags. The snapshot is replaced
// wholesale and atomically; readers never observe a partial update. The
// selected asset is an independent cell holding a full copy from the
// snapshot it was fetched in, so a later refresh does not disturb it.
type Store struct {
	svc Service

	mu          sync.RWMutex
	snapshot    models.Snapshot
	selected    models.Asset
	hasSelected bool
	loading     bool
	lastErr     string
}

func NewStore(svc Service) *Store {
	return &Store{svc: svc}
}

// Refresh replaces the snapshot with the service's current asset
// collection. On failure the previous snapshot is kept and the error
// message is surfaced alongside it. Concurrent refreshes race and the last
// response to arrive wins; both carry full snapshots so neither corrupts
// state.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	snapshot, err := s.svc.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.snapshot = snapshot
	return nil
}

// Select fetches one asset's full detail and makes it the selected asset.
// On failure the previous selection is kept.
func (s *Store) Select(ctx context.Context, id int) (models.Asset, error) {
	asset, err := s.svc.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Asset{}, err
	}
	s.selected = asset
	s.hasSelected = true
	s.lastErr = ""
	return asset, nil
}

// Snapshot returns the current snapshot. The returned slice is shared and
// must not be mutated.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Selected returns a copy of the selected asset, if any.
func (s *Store) Selected() (models.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.hasSelected
}

// ClearSelection drops the selected asset.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = models.Asset{}
	s.hasSelected = false
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last surfaced error message, empty when clear.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError dismisses the surfaced error; the snapshot is left alone.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// replace installs a new snapshot, used by the ingestion pipeline on
// completion.
func (s *Store) replace(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.lastErr = ""
}
