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

	"github.com/fleetsense/fleetsense/internal/analytics"
	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/internal/tui/components"
	"github.com/fleetsense/fleetsense/internal/tui/styles"
	"github.com/fleetsense/fleetsense/pkg/helper"
)

// StatisticsModel renders the analytics over the current snapshot. All
// figures are recomputed on every frame; there is nothing to invalidate.
type StatisticsModel struct {
	store  *fleet.Store
	Width  int
	Height int
}

func NewStatisticsModel(store *fleet.Store) StatisticsModel {
	return StatisticsModel{store: store}
}

func (m StatisticsModel) Init() tea.Cmd {
	return nil
}

func (m StatisticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m StatisticsModel) View() string {
	if m.Width == 0 {
		return ""
	}

	snapshot := m.store.Snapshot()

	var b strings.Builder
	w := m.Width
	b.WriteString("\n")
	b.WriteString(components.Header("Fleet Statistics & Analytics", w) + "\n\n")

	if len(snapshot) == 0 {
		b.WriteString(components.Empty("No fleet data", "Upload a sensor CSV from the overview first", w) + "\n")
		return m.finish(b.String(), w)
	}

	avg := analytics.Averages(snapshot)
	b.WriteString(components.StatRow([]components.Stat{
		{Label: "Avg Risk Score", Value: fmt.Sprintf("%.1f%%", avg.RiskScore), Style: styles.PrimaryStyle},
		{Label: "Avg Temperature", Value: fmt.Sprintf("%.1f°C", avg.Temperature), Style: styles.ErrorStyle},
		{Label: "Avg Vibration", Value: fmt.Sprintf("%.2f mm/s", avg.Vibration), Style: styles.WarningStyle},
		{Label: "Avg Pressure", Value: fmt.Sprintf("%.1f PSI", avg.Pressure), Style: styles.SuccessStyle},
		{Label: "Avg Runtime", Value: fmt.Sprintf("%.0fh", avg.Runtime), Style: styles.BrightStyle},
	}, w) + "\n\n")

	b.WriteString(components.Section("RISK SCORE ACROSS FLEET", w) + "\n\n")
	trend := analytics.RiskTrend(snapshot)
	risks := make([]float64, len(trend))
	for i, p := range trend {
		risks[i] = p.Risk
	}
	var trendContent strings.Builder
	trendContent.WriteString("  " + components.Sparkline(risks, w-12) + "\n")
	trendContent.WriteString("  " + styles.SubtleStyle.Render(fmt.Sprintf("asset 1 → %d, in ingestion order", len(trend))))
	b.WriteString(components.Wrap(trendContent.String(), w) + "\n\n")

	b.WriteString(components.Section("SENSOR RANGES (MIN/AVG/MAX)", w) + "\n\n")
	var rangesContent strings.Builder
	if ranges, ok := analytics.SensorRangeStatistics(snapshot); ok {
		rangesContent.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			styles.MutedStyle.Render(styles.Pad("SENSOR", 14)),
			styles.MutedStyle.Render(styles.PadL("MIN", 9)),
			styles.MutedStyle.Render(styles.PadL("AVG", 9)),
			styles.MutedStyle.Render(styles.PadL("MAX", 9))))
		rangesContent.WriteString("  " + styles.Line(w-12) + "\n")
		for _, r := range ranges {
			rangesContent.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				styles.Pad(r.Sensor, 14),
				styles.PadL(fmt.Sprintf("%.2f", r.Min), 9),
				styles.PadL(fmt.Sprintf("%.2f", r.Avg), 9),
				styles.PadL(fmt.Sprintf("%.2f", r.Max), 9)))
		}
	}
	b.WriteString(components.Wrap(strings.TrimRight(rangesContent.String(), "\n"), w) + "\n\n")

	b.WriteString(components.Section("NEXT 10 PREDICTED FAILURES", w) + "\n\n")
	timeline := analytics.FailureTimeline(snapshot, 10)
	maxDays := 0.0
	for _, e := range timeline {
		if e.Days > maxDays {
			maxDays = e.Days
		}
	}
	var timelineContent strings.Builder
	for i, e := range timeline {
		style := styles.ErrorStyle
		if e.Days >= 7 {
			style = styles.WarningStyle
		}
		timelineContent.WriteString(components.HBar(styles.Trunc(e.Name, 14), e.Days, maxDays, style, w))
		if i < len(timeline)-1 {
			timelineContent.WriteString("\n")
		}
	}
	b.WriteString(components.Wrap(timelineContent.String(), w) + "\n\n")

	b.WriteString(components.Section("FLEET HEALTH", w) + "\n\n")
	healthy, warning, critical, unknown := snapshot.Counts()
	var health strings.Builder
	health.WriteString(fmt.Sprintf("  %s %d   %s %d   %s %d",
		styles.SuccessStyle.Render("Healthy"), healthy,
		styles.WarningStyle.Render("Warning"), warning,
		styles.ErrorStyle.Render("Critical"), critical))
	if unknown > 0 {
		health.WriteString(fmt.Sprintf("   %s %d", styles.MutedStyle.Render("Unclassified"), unknown))
	}
	b.WriteString(components.Wrap(health.String(), w) + "\n\n")

	b.WriteString(components.Section("KEY INSIGHTS", w) + "\n\n")
	ins := analytics.Insights(snapshot)
	var insights strings.Builder
	insights.WriteString("  " + styles.SubtleStyle.Render("Fleet performance   ") + ins.Performance + "\n")
	insights.WriteString("  " + styles.SubtleStyle.Render("Temperature trends  ") + ins.Temperature + "\n")
	insights.WriteString("  " + styles.SubtleStyle.Render("Vibration analysis  ") + ins.Vibration + "\n")
	maintenance := ins.Maintenance
	if ins.Urgent {
		maintenance = styles.ErrorStyle.Render(maintenance)
	}
	insights.WriteString("  " + styles.SubtleStyle.Render("Maintenance priority") + " " + maintenance)
	b.WriteString(components.Wrap(insights.String(), w) + "\n")

	return m.finish(b.String(), w)
}

func (m StatisticsModel) finish(content string, w int) string {
	lines := helper.CountLines(content)
	for i := 0; i < m.Height-lines-3; i++ {
		content += "\n"
	}
	content += "\n" + styles.Line(w) + "\n"
	content += components.Help([][]string{
		{"esc", "back to overview"}, {"e", "export report"}, {"q", "quit"},
	})
	return content
}
