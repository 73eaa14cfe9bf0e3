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

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleetsense/fleetsense/internal/models"
	"github.com/fleetsense/fleetsense/internal/tui/styles"
)

func Wrap(content string, w int) string {
	return styles.Box.Width(w - 4).Render(content)
}

func WrapSuccess(content string, w int) string {
	return styles.BoxSuccess.Width(w - 4).Render(content)
}

func WrapError(content string, w int) string {
	return styles.BoxError.Width(w - 4).Render(content)
}

func WrapWarning(content string, w int) string {
	return styles.BoxWarning.Width(w - 4).Render(content)
}

func Header(title string, w int) string {
	left := styles.LogoCompact()
	right := styles.Tagline()
	if title != "" {
		right = styles.HeaderStyle.Render(title)
	}
	lw := lipgloss.Width(left)
	rw := lipgloss.Width(right)
	gap := w - lw - rw - 4
	if gap < 1 {
		gap = 1
	}
	return "  " + left + strings.Repeat(" ", gap) + right + "  "
}

func Section(title string, w int) string {
	t := styles.MutedStyle.Bold(true).Render(strings.ToUpper(title))
	tw := lipgloss.Width(t)
	lw := w - tw - 6
	if lw < 0 {
		lw = 0
	}
	return "  " + t + " " + styles.Line(lw)
}

func Help(items [][]string) string {
	var p []string
	for _, i := range items {
		if len(i) >= 2 {
			p = append(p, styles.KeyStyle.Render(i[0])+" "+styles.DescStyle.Render(i[1]))
		}
	}
	return "  " + strings.Join(p, "   ")
}

// RiskBadge renders an asset's risk level as a colored badge. Levels the
// service invented get a muted badge rather than being hidden.
func RiskBadge(level models.RiskLevel) string {
	switch level {
	case models.RiskHealthy:
		return styles.BadgeSuccess.Render("HEALTHY")
	case models.RiskWarning:
		return styles.BadgeWarning.Render("WARNING")
	case models.RiskCritical:
		return styles.BadgeError.Render("CRITICAL")
	default:
		return styles.BadgeMuted.Render(strings.ToUpper(string(level)))
	}
}

func MsgSuccess(msg string, w int) string {
	return WrapSuccess(styles.SuccessStyle.Render(styles.IconSuccess)+"  "+msg, w)
}

func MsgError(msg string, w int) string {
	return WrapError(styles.ErrorStyle.Render(styles.IconError)+"  "+msg, w)
}

func MsgWarning(msg string, w int) string {
	return WrapWarning(styles.WarningStyle.Render(styles.IconWarning)+"  "+msg, w)
}

func Empty(title, sub string, w int) string {
	content := styles.MutedStyle.Render(title)
	if sub != "" {
		content += "\n" + styles.SubtleStyle.Render(sub)
	}
	return Wrap(content, w)
}

// Stat is one headline figure on a view.
type Stat struct {
	Label string
	Value string
	Style lipgloss.Style
}

// StatRow lays headline figures out side by side.
func StatRow(stats []Stat, w int) string {
	cards := make([]string, len(stats))
	cw := (w-4)/len(stats) - 4
	if cw < 10 {
		cw = 10
	}
	for i, s := range stats {
		content := styles.SubtleStyle.Render(s.Label) + "\n" + s.Style.Bold(true).Render(s.Value)
		cards[i] = styles.Box.Width(cw).Render(content)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// HBar renders a labeled horizontal bar scaled against max.
func HBar(label string, value, max float64, style lipgloss.Style, w int) string {
	barWidth := w - 36
	if barWidth < 8 {
		barWidth = 8
	}
	filled := 0
	if max > 0 {
		filled = int(value / max * float64(barWidth))
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := style.Render(strings.Repeat(styles.IconBar, filled)) +
		styles.DimStyle.Render(strings.Repeat(styles.IconBar, barWidth-filled))
	return fmt.Sprintf("  %s %s %s",
		styles.Pad(label, 14), bar, styles.MutedStyle.Render(fmt.Sprintf("%.1f", value)))
}

// Sparkline compresses a series into one line of block glyphs, for the
// risk-trend area chart.
func Sparkline(values []float64, w int) string {
	if len(values) == 0 {
		return ""
	}
	glyphs := []rune("▁▂▃▄▅▆▇█")
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}

	// Downsample to the available width, keeping series order.
	cols := w
	if cols > len(values) {
		cols = len(values)
	}
	var b strings.Builder
	for c := 0; c < cols; c++ {
		v := values[c*len(values)/cols]
		idx := int(v / max * float64(len(glyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(glyphs) {
			idx = len(glyphs) - 1
		}
		b.WriteRune(glyphs[idx])
	}
	return styles.PrimaryStyle.Render(b.String())
}

func AssetHeader(w int) string {
	return fmt.Sprintf("       %s  %s  %s  %s  %s  %s",
		styles.MutedStyle.Render(styles.Pad("NAME", 22)),
		styles.MutedStyle.Render(styles.Pad("RISK", 10)),
		styles.MutedStyle.Render(styles.PadL("SCORE", 6)),
		styles.MutedStyle.Render(styles.PadL("TEMP", 7)),
		styles.MutedStyle.Render(styles.PadL("VIBR", 6)),
		styles.MutedStyle.Render(styles.PadL("FAIL(D)", 8)))
}

func AssetRow(a models.Asset, selected bool, w int) string {
	ptr := "   "
	if selected {
		ptr = " " + styles.Pointer() + " "
	}

	dot := styles.MutedStyle.Render(styles.IconDot)
	switch a.RiskLevel {
	case models.RiskHealthy:
		dot = styles.SuccessStyle.Render(styles.IconDot)
	case models.RiskWarning:
		dot = styles.WarningStyle.Render(styles.IconDot)
	case models.RiskCritical:
		dot = styles.ErrorStyle.Render(styles.IconDot)
	}

	nameStyle := styles.BrightStyle
	if selected {
		nameStyle = styles.PrimaryStyle
	}

	return fmt.Sprintf("%s%s  %s  %s  %s  %s  %s  %s",
		ptr,
		dot,
		nameStyle.Render(styles.Pad(styles.Trunc(a.Name, 22), 22)),
		styles.Pad(string(a.RiskLevel), 10),
		styles.PadL(fmt.Sprintf("%.1f", a.RiskScore), 6),
		styles.PadL(fmt.Sprintf("%.1f", a.Temperature), 7),
		styles.PadL(fmt.Sprintf("%.2f", a.Vibration), 6),
		styles.PadL(fmt.Sprintf("%.0f", a.PredictedFailure), 8))
}
