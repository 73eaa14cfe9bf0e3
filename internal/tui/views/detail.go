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
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/internal/tui/components"
	"github.com/fleetsense/fleetsense/internal/tui/styles"
	"github.com/fleetsense/fleetsense/pkg/helper"
)

type DetailModel struct {
	store  *fleet.Store
	Width  int
	Height int
	scroll int
}

func NewDetailModel(store *fleet.Store) DetailModel {
	return DetailModel{store: store}
}

func (m DetailModel) Init() tea.Cmd {
	return nil
}

func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		}
	}
	return m, nil
}

func (m DetailModel) View() string {
	if m.Width == 0 {
		return ""
	}

	var b strings.Builder
	w := m.Width
	b.WriteString("\n")
	b.WriteString(components.Header("Asset Detail", w) + "\n\n")

	asset, ok := m.store.Selected()
	if !ok {
		// Degenerate state: detail with no selection renders an empty
		// hint rather than an error.
		b.WriteString(components.Empty("No asset selected", "Pick an asset on the overview and press enter", w) + "\n")
		return m.finish(b.String(), w)
	}

	var info strings.Builder
	info.WriteString(styles.TitleStyle.Render(asset.Name) + "  " + components.RiskBadge(asset.RiskLevel) + "\n")
	info.WriteString(styles.SubtleStyle.Render("Detailed analysis & predictions") + "\n")
	b.WriteString(components.Wrap(info.String(), w) + "\n\n")

	scoreStyle := styles.SuccessStyle
	switch asset.RiskLevel {
	case models.RiskWarning:
		scoreStyle = styles.WarningStyle
	case models.RiskCritical:
		scoreStyle = styles.ErrorStyle
	}

	b.WriteString(components.StatRow([]components.Stat{
		{Label: "Risk Score", Value: fmt.Sprintf("%.1f%%", asset.RiskScore), Style: scoreStyle},
		{Label: "Predicted Failure", Value: fmt.Sprintf("%.0f days", asset.PredictedFailure), Style: styles.BrightStyle},
		{Label: "Last Maintenance", Value: asset.LastMaintenance, Style: styles.BrightStyle},
		{Label: "Runtime", Value: fmt.Sprintf("%.0fh", asset.Runtime), Style: styles.BrightStyle},
	}, w) + "\n\n")

	b.WriteString(components.Section("CURRENT READINGS", w) + "\n\n")
	var readings strings.Builder
	readings.WriteString(fmt.Sprintf("  %s %.1f °C\n", styles.Pad("Temperature", 14), asset.Temperature))
	readings.WriteString(fmt.Sprintf("  %s %.2f mm/s\n", styles.Pad("Vibration", 14), asset.Vibration))
	readings.WriteString(fmt.Sprintf("  %s %.1f PSI", styles.Pad("Pressure", 14), asset.Pressure))
	b.WriteString(components.Wrap(readings.String(), w) + "\n\n")

	b.WriteString(components.Section("SENSOR HISTORY (24H)", w) + "\n\n")
	if len(asset.HistoricalData) == 0 {
		b.WriteString(components.Empty("No historical samples", "", w) + "\n")
	} else {
		var hist strings.Builder
		hist.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			styles.MutedStyle.Render(styles.Pad("TIME", 8)),
			styles.MutedStyle.Render(styles.PadL("TEMP", 8)),
			styles.MutedStyle.Render(styles.PadL("VIBR", 8)),
			styles.MutedStyle.Render(styles.PadL("PRESS", 8))))
		hist.WriteString("  " + styles.Line(w-12) + "\n")

		visible := m.visibleHistory(asset.HistoricalData)
		for _, p := range visible {
			hist.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				styles.Pad(p.Time, 8),
				styles.PadL(fmt.Sprintf("%.1f", p.Temperature), 8),
				styles.PadL(fmt.Sprintf("%.2f", p.Vibration), 8),
				styles.PadL(fmt.Sprintf("%.1f", p.Pressure), 8)))
		}
		b.WriteString(components.Wrap(strings.TrimRight(hist.String(), "\n"), w) + "\n")
	}

	return m.finish(b.String(), w)
}

// visibleHistory windows the sample table to the space available.
func (m DetailModel) visibleHistory(points []models.HistoricalPoint) []models.HistoricalPoint {
	rows := m.Height - 26
	if rows < 4 {
		rows = 4
	}
	if rows >= len(points) {
		return points
	}
	start := m.scroll
	if start > len(points)-rows {
		start = len(points) - rows
	}
	return points[start : start+rows]
}

func (m DetailModel) finish(content string, w int) string {
	lines := helper.CountLines(content)
	for i := 0; i < m.Height-lines-3; i++ {
		content += "\n"
	}
	content += "\n" + styles.Line(w) + "\n"
	content += components.Help([][]string{
		{"↑/↓", "scroll history"}, {"esc", "back to overview"}, {"q", "quit"},
	})
	return content
}
