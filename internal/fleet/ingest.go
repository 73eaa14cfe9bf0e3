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
	"errors"
	"io"
	"sync"

	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/pkg/logger"
)

var ErrIngestInFlight = errors.New("an ingestion is already in progress")

type IngestState int

const (
	IngestIdle IngestState = iota
	IngestInProgress
	IngestCompleted
	IngestFailed
)

// IngestEvent is one observation of a running ingestion: either a progress
// percentage or the terminal outcome. Exactly one terminal event is
// delivered per run, after all progress events.
type IngestEvent struct {
	Percent  int
	Terminal bool
	Summary  *models.IngestSummary
	Err      error
}

// Ingestion drives one file-upload-and-parse round trip against the asset
// service. It never inspects file content; format validation is the
// service's job. On completion the store snapshot is replaced wholesale;
// on failure the snapshot is untouched.
type Ingestion struct {
	store *Store
	svc   Service
	log   *logger.Logger

	mu    sync.Mutex
	state IngestState
}

func NewIngestion(store *Store, svc Service) *Ingestion {
	return &Ingestion{store: store, svc: svc, log: logger.With("INGEST")}
}

func (in *Ingestion) State() IngestState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Run starts one ingestion and returns its event stream. Progress events
// arrive in non-decreasing order; the stream ends with exactly one terminal
// event carrying the last observed percentage, and is then closed. Progress
// reported after the terminal event is dropped, never delivered. A nil file
// is a silent no-op: the channel is closed without any events and the state
// stays Idle. Only one ingestion may be in flight; a second Run while one
// is running terminates immediately with ErrIngestInFlight.
func (in *Ingestion) Run(ctx context.Context, filename string, file io.Reader, size int64) <-chan IngestEvent {
	events := make(chan IngestEvent, 1)

	if file == nil {
		close(events)
		return events
	}

	in.mu.Lock()
	if in.state == IngestInProgress {
		in.mu.Unlock()
		events <- IngestEvent{Terminal: true, Err: ErrIngestInFlight}
		close(events)
		return events
	}
	in.state = IngestInProgress
	in.mu.Unlock()

	go func() {
		// The guard owns the channel close. A service that lets a
		// progress callback escape its own return would otherwise race
		// the close and panic the process; here late progress is
		// silently dropped once the terminal event is out.
		var sendMu sync.Mutex
		finished := false
		last := 0
		send := func(ev IngestEvent) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if finished {
				return
			}
			if ev.Terminal {
				finished = true
				ev.Percent = last
			} else {
				last = ev.Percent
			}
			events <- ev
			if ev.Terminal {
				close(events)
			}
		}

		result, err := in.svc.Ingest(ctx, filename, file, size, func(percent int) {
			send(IngestEvent{Percent: percent})
		})
		if err != nil {
			in.setState(IngestFailed)
			send(IngestEvent{Terminal: true, Err: err})
			return
		}

		summary := result.Summary
		if summary.Total != len(result.Assets) {
			// Validation gap: the server-computed total disagrees with the
			// snapshot it returned. The counts stay trusted as received;
			// the mismatch is only logged.
			in.log.Warn("summary total %d does not match snapshot length %d", summary.Total, len(result.Assets))
		}

		in.store.replace(models.Snapshot(result.Assets))
		in.setState(IngestCompleted)
		send(IngestEvent{Terminal: true, Summary: &summary})
	}()

	return events
}

// Reset returns a terminal ingestion to Idle so the same file can be
// submitted again.
func (in *Ingestion) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.state != IngestInProgress {
		in.state = IngestIdle
	}
}

func (in *Ingestion) setState(s IngestState) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.state = s
}
