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

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#2563EB")
	Muted     = lipgloss.Color("#888888")
	Subtle    = lipgloss.Color("#666666")
	Dim       = lipgloss.Color("#444444")
	DimBorder = lipgloss.Color("#333333")
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Warning   = lipgloss.Color("#F59E0B")
)

var (
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	BrightStyle  = lipgloss.NewStyle()
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle)
	DimStyle     = lipgloss.NewStyle().Foreground(Dim)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimBorder).
		Padding(1, 2)

	BoxSuccess = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(1, 2)

	BoxError = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(1, 2)

	BoxWarning = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Warning).
			Padding(1, 2)

	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	KeyStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	DescStyle = lipgloss.NewStyle().Foreground(Subtle)

	BadgeSuccess = lipgloss.NewStyle().Background(Success).Padding(0, 1)
	BadgeError   = lipgloss.NewStyle().Background(Error).Padding(0, 1)
	BadgeWarning = lipgloss.NewStyle().Background(Warning).Padding(0, 1)
	BadgePrimary = lipgloss.NewStyle().Background(Primary).Padding(0, 1)
	BadgeMuted   = lipgloss.NewStyle().Background(Subtle).Padding(0, 1)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconPointer = "▸"
	IconDash    = "─"
	IconDot     = "●"
	IconBar     = "▇"
)

var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func Pointer() string { return PrimaryStyle.Render(IconPointer) }

func Line(w int) string {
	if w < 0 {
		w = 0
	}
	return DimStyle.Render(strings.Repeat(IconDash, w))
}

func LogoCompact() string {
	return PrimaryStyle.Bold(true).Render("◆ FLEETSENSE")
}

func Tagline() string {
	return SubtleStyle.Render("Predictive Maintenance & Asset Risk Analysis")
}

func Spinner(frame int) string {
	idx := frame % len(SpinnerFrames)
	return PrimaryStyle.Render(SpinnerFrames[idx])
}

func Pad(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return s + strings.Repeat(" ", w-l)
}

func PadL(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return strings.Repeat(" ", w-l) + s
}

func Trunc(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return string(r[:1])
	}
	return string(r[:w-1]) + "…"
}
