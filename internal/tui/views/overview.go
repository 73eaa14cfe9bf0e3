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

package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetsense/fleetsense/internal/analytics"
	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/internal/tui/components"
	"github.com/fleetsense/fleetsense/internal/tui/styles"
	"github.com/fleetsense/fleetsense/pkg/helper"
)

type OverviewModel struct {
	store        *fleet.Store
	Width        int
	Height       int
	Cursor       int
	Loading      bool
	SpinnerFrame int
	Message      string
	MessageType  string
}

func NewOverviewModel(store *fleet.Store) OverviewModel {
	return OverviewModel{store: store}
}

func (m *OverviewModel) SetMessage(msg, t string) {
	m.Message = msg
	m.MessageType = t
}

func (m *OverviewModel) ClearMessage() {
	m.Message = ""
	m.MessageType = ""
}

func (m OverviewModel) Init() tea.Cmd {
	return tea.Batch(m.fetchData, m.spinnerTick)
}

func (m OverviewModel) spinnerTick() tea.Msg {
	time.Sleep(80 * time.Millisecond)
	return SpinnerTickMsg{}
}

func (m OverviewModel) fetchData() tea.Msg {
	if err := m.store.Refresh(context.Background()); err != nil {
		return err
	}
	return SnapshotMsg{Snapshot: m.store.Snapshot()}
}

// selectAsset fetches the asset under the cursor; success drives the
// navigator into the detail view.
func (m OverviewModel) selectAsset() tea.Cmd {
	snapshot := m.store.Snapshot()
	if m.Cursor >= len(snapshot) {
		return nil
	}
	id := snapshot[m.Cursor].ID
	return func() tea.Msg {
		asset, err := m.store.Select(context.Background(), id)
		if err != nil {
			return err
		}
		return AssetSelectedMsg{Asset: asset}
	}
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.store.Snapshot())-1 {
				m.Cursor++
			}
		case "enter":
			return m, m.selectAsset()
		}
	case SpinnerTickMsg:
		m.SpinnerFrame++
		if m.Loading {
			return m, m.spinnerTick
		}
	case SnapshotMsg:
		m.Loading = false
		if m.Cursor >= len(msg.Snapshot) {
			m.Cursor = 0
		}
		return m, nil
	case error:
		m.Loading = false
		return m, nil
	}
	return m, nil
}

func (m OverviewModel) View() string {
	if m.Width == 0 {
		return ""
	}

	snapshot := m.store.Snapshot()
	healthy, warning, critical, _ := snapshot.Counts()

	var b strings.Builder
	w := m.Width
	b.WriteString("\n")
	b.WriteString(components.Header("", w) + "\n\n")

	if errMsg := m.store.Err(); errMsg != "" {
		b.WriteString(components.MsgError(errMsg+"  (press c to dismiss, showing last known data)", w) + "\n\n")
	}
	if m.Message != "" {
		switch m.MessageType {
		case "success":
			b.WriteString(components.MsgSuccess(m.Message, w) + "\n\n")
		case "error":
			b.WriteString(components.MsgError(m.Message, w) + "\n\n")
		default:
			b.WriteString(components.MsgWarning(m.Message, w) + "\n\n")
		}
	}

	b.WriteString(components.StatRow([]components.Stat{
		{Label: "Total Assets", Value: fmt.Sprintf("%d", len(snapshot)), Style: styles.PrimaryStyle},
		{Label: "Healthy", Value: fmt.Sprintf("%d", healthy), Style: styles.SuccessStyle},
		{Label: "Warning", Value: fmt.Sprintf("%d", warning), Style: styles.WarningStyle},
		{Label: "Critical", Value: fmt.Sprintf("%d", critical), Style: styles.ErrorStyle},
	}, w) + "\n\n")

	if m.Loading && len(snapshot) == 0 {
		b.WriteString(components.Loading(m.SpinnerFrame, "Loading fleet...") + "\n\n")
	}

	if len(snapshot) > 0 {
		b.WriteString(components.Section("AVERAGE SENSOR READINGS", w) + "\n\n")
		avg := analytics.AverageSensorReadings(snapshot)
		max := avg.Temperature
		if avg.Vibration > max {
			max = avg.Vibration
		}
		if avg.Pressure > max {
			max = avg.Pressure
		}
		var bars strings.Builder
		bars.WriteString(components.HBar("Temperature", avg.Temperature, max, styles.ErrorStyle, w) + "\n")
		bars.WriteString(components.HBar("Vibration ×20", avg.Vibration, max, styles.PrimaryStyle, w) + "\n")
		bars.WriteString(components.HBar("Pressure", avg.Pressure, max, styles.SuccessStyle, w))
		b.WriteString(components.Wrap(bars.String(), w) + "\n\n")
	}

	b.WriteString(components.Section("ASSETS", w) + "\n\n")
	var assetContent strings.Builder
	if len(snapshot) == 0 && !m.Loading {
		assetContent.WriteString("  " + styles.MutedStyle.Render("No assets yet. Press 'u' to upload a sensor CSV."))
	} else if len(snapshot) > 0 {
		assetContent.WriteString(components.AssetHeader(w) + "\n")
		assetContent.WriteString("  " + styles.Line(w-8) + "\n")
		for i, a := range snapshot {
			assetContent.WriteString(components.AssetRow(a, i == m.Cursor, w) + "\n")
		}
	}
	if assetContent.Len() > 0 {
		b.WriteString(components.Wrap(assetContent.String(), w) + "\n")
	}

	content := b.String()
	lines := helper.CountLines(content)
	for i := 0; i < m.Height-lines-3; i++ {
		content += "\n"
	}

	content += "\n" + styles.Line(w) + "\n"
	content += components.Help([][]string{
		{"enter", "detail"}, {"s", "statistics"}, {"u", "upload"}, {"r", "refresh"}, {"e", "export"}, {"q", "quit"},
	})

	if m.Loading {
		content += "  " + components.LoadingInline(m.SpinnerFrame)
	}

	return content
}
