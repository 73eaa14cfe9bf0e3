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

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetsense/fleetsense/internal/client"
	"github.com/fleetsense/fleetsense/internal/config"
	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/internal/tui/components"
	"github.com/fleetsense/fleetsense/internal/tui/views"
)

// ViewState is the navigator position. Detail and statistics are only
// reachable from the overview and only return to it.
type ViewState int

const (
	ViewOverview ViewState = iota
	ViewDetail
	ViewStatistics
)

type ingestEventMsg fleet.IngestEvent

// ingestClosedMsg marks the end of an ingestion event stream.
type ingestClosedMsg struct{}

type exportDoneMsg struct{ Path string }
type exportFailedMsg struct{ Err error }

type Model struct {
	ActiveView ViewState
	Width      int
	Height     int
	Ready      bool

	Store  *fleet.Store
	Ingest *fleet.Ingestion
	Client *client.Client
	Cfg    *config.Config

	Overview   views.OverviewModel
	Detail     views.DetailModel
	Statistics views.StatisticsModel

	// Upload flow state. The prompt collects a file path; while an
	// ingestion runs the progress dialog blocks input, and on completion
	// the summary dialog holds until dismissed.
	PromptOpen   bool
	PromptValue  string
	ProgressOpen bool
	ProgressPct  int
	progressBar  progress.Model
	uploadName   string
	uploadSize   int64
	uploadFile   *os.File
	ingestCh     <-chan fleet.IngestEvent
	SummaryOpen  bool
	Summary      models.IngestSummary

	Exporting bool
}

func NewModel(store *fleet.Store, ing *fleet.Ingestion, cl *client.Client, cfg *config.Config) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 44

	return Model{
		ActiveView:  ViewOverview,
		Store:       store,
		Ingest:      ing,
		Client:      cl,
		Cfg:         cfg,
		Overview:    views.NewOverviewModel(store),
		Detail:      views.NewDetailModel(store),
		Statistics:  views.NewStatisticsModel(store),
		progressBar: bar,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.Overview.Init()
}

func waitForIngest(ch <-chan fleet.IngestEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return ingestClosedMsg{}
		}
		return ingestEventMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Overview.Width = msg.Width
		m.Overview.Height = msg.Height
		m.Detail.Width = msg.Width
		m.Detail.Height = msg.Height
		m.Statistics.Width = msg.Width
		m.Statistics.Height = msg.Height

	case ingestEventMsg:
		ev := fleet.IngestEvent(msg)
		if !ev.Terminal {
			m.ProgressPct = ev.Percent
			return m, waitForIngest(m.ingestCh)
		}
		m.finishUpload()
		if ev.Err != nil {
			m.ProgressOpen = false
			m.Overview.SetMessage(fmt.Sprintf("Upload failed: %v", ev.Err), "error")
			return m, nil
		}
		m.ProgressOpen = false
		m.Summary = *ev.Summary
		m.SummaryOpen = true
		m.ActiveView = ViewOverview
		return m, nil

	case ingestClosedMsg:
		return m, nil

	case exportDoneMsg:
		m.Exporting = false
		m.Overview.SetMessage("Report saved to "+msg.Path, "success")
		return m, nil

	case exportFailedMsg:
		m.Exporting = false
		m.Overview.SetMessage(fmt.Sprintf("Export failed: %v", msg.Err), "error")
		return m, nil

	case views.AssetSelectedMsg:
		m.ActiveView = ViewDetail
		return m, nil

	case tea.KeyMsg:
		if handled, mdl, c := m.handleKey(msg); handled {
			return mdl, c
		}
	}

	switch m.ActiveView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.Overview.Update(msg)
		m.Overview = newModel.(views.OverviewModel)
		cmds = append(cmds, cmd)
	case ViewDetail:
		var newModel tea.Model
		newModel, cmd = m.Detail.Update(msg)
		m.Detail = newModel.(views.DetailModel)
		cmds = append(cmds, cmd)
	case ViewStatistics:
		var newModel tea.Model
		newModel, cmd = m.Statistics.Update(msg)
		m.Statistics = newModel.(views.StatisticsModel)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey owns navigation and the dialog flows; anything it does not
// claim falls through to the active view.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return true, m, tea.Quit
	}

	// The progress dialog blocks everything except quit.
	if m.ProgressOpen {
		return true, m, nil
	}

	if m.SummaryOpen {
		switch key {
		case "enter", "esc", "q":
			m.SummaryOpen = false
			return true, m, m.Overview.Init()
		}
		return true, m, nil
	}

	if m.PromptOpen {
		switch key {
		case "esc":
			m.PromptOpen = false
			m.PromptValue = ""
			return true, m, nil
		case "enter":
			path := m.PromptValue
			m.PromptOpen = false
			m.PromptValue = ""
			return true, m, m.startUpload(path)
		case "backspace":
			if len(m.PromptValue) > 0 {
				m.PromptValue = m.PromptValue[:len(m.PromptValue)-1]
			}
			return true, m, nil
		default:
			if msg.Type == tea.KeyRunes {
				m.PromptValue += string(msg.Runes)
			} else if msg.Type == tea.KeySpace {
				m.PromptValue += " "
			}
			return true, m, nil
		}
	}

	switch key {
	case "q":
		return true, m, tea.Quit
	case "esc":
		if m.ActiveView != ViewOverview {
			// Back to overview. Nothing else is cleared; the selection
			// stays so re-entering detail is cheap.
			m.ActiveView = ViewOverview
			return true, m, nil
		}
	case "c":
		if m.ActiveView == ViewOverview {
			m.Store.ClearError()
			m.Overview.ClearMessage()
			return true, m, nil
		}
	case "s":
		if m.ActiveView == ViewOverview {
			m.ActiveView = ViewStatistics
			return true, m, m.Statistics.Init()
		}
	case "r":
		if m.ActiveView == ViewOverview {
			m.Overview.Loading = true
			return true, m, m.Overview.Init()
		}
	case "u":
		if m.ActiveView == ViewOverview && m.Ingest.State() != fleet.IngestInProgress {
			m.PromptOpen = true
			m.PromptValue = ""
			return true, m, nil
		}
	case "e":
		if (m.ActiveView == ViewOverview || m.ActiveView == ViewStatistics) && !m.Exporting {
			if len(m.Store.Snapshot()) == 0 {
				m.Overview.SetMessage("No assets to export. Upload a CSV first.", "warning")
				return true, m, nil
			}
			m.Exporting = true
			return true, m, m.exportReport()
		}
	}

	return false, m, nil
}

// startUpload opens the file and hands it to the ingestion pipeline. An
// empty path is a silent no-op, mirroring a cancelled file picker.
func (m *Model) startUpload(path string) tea.Cmd {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		m.Overview.SetMessage(fmt.Sprintf("Cannot open %s: %v", path, err), "error")
		return nil
	}

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	m.uploadFile = f
	m.uploadName = filepath.Base(path)
	m.uploadSize = size
	m.ProgressPct = 0
	m.ProgressOpen = true
	m.ingestCh = m.Ingest.Run(context.Background(), m.uploadName, f, size)
	return waitForIngest(m.ingestCh)
}

// finishUpload releases the file handle and rearms the pipeline so the
// same filename can be uploaded again.
func (m *Model) finishUpload() {
	if m.uploadFile != nil {
		m.uploadFile.Close()
		m.uploadFile = nil
	}
	m.Ingest.Reset()
}

func (m *Model) exportReport() tea.Cmd {
	cfg := m.Cfg
	cl := m.Client
	return func() tea.Msg {
		blob, name, err := cl.ExportReport(context.Background())
		if err != nil {
			return exportFailedMsg{Err: err}
		}
		if name == "" {
			name = fmt.Sprintf("maintenance_report_%s.pdf", time.Now().Format("2006-01-02"))
		}
		path := filepath.Join(cfg.Export.Dir, name)
		if err := os.WriteFile(path, blob, 0644); err != nil {
			return exportFailedMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

func (m *Model) View() string {
	if !m.Ready {
		return ""
	}

	if m.ProgressOpen {
		bar := m.progressBar.ViewAs(float64(m.ProgressPct) / 100)
		return components.ProgressDialog(m.uploadName, bar, m.ProgressPct, m.uploadSize, m.Width, m.Height)
	}
	if m.SummaryOpen {
		return components.SummaryDialog(m.Summary, m.Width, m.Height)
	}
	if m.PromptOpen {
		return components.PromptDialog("Upload sensor CSV", m.PromptValue,
			"enter to upload, esc to cancel", m.Width, m.Height)
	}

	switch m.ActiveView {
	case ViewDetail:
		return m.Detail.View()
	case ViewStatistics:
		return m.Statistics.View()
	default:
		return m.Overview.View()
	}
}
