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
	"github.com/fleetsense/fleetsense/pkg/helper"
)

// centerDialog places a rendered dialog box on an otherwise empty screen.
func centerDialog(box string, screenWidth, screenHeight int) string {
	lines := strings.Split(box, "\n")

	topPad := (screenHeight - len(lines)) / 2
	if topPad < 0 {
		topPad = 0
	}
	leftPad := (screenWidth - lipgloss.Width(lines[0])) / 2
	if leftPad < 0 {
		leftPad = 0
	}

	var b strings.Builder
	for i := 0; i < topPad; i++ {
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(helper.Spaces(leftPad) + line + "\n")
	}
	return b.String()
}

// ProgressDialog is the blocking upload-progress overlay. The bar is
// rendered by the caller (a bubbles progress model) and passed in; size
// is the file size in bytes, or non-positive when unknown.
func ProgressDialog(filename, bar string, percent int, size int64, screenWidth, screenHeight int) string {
	dialogWidth := 56
	if dialogWidth > screenWidth-4 {
		dialogWidth = screenWidth - 4
	}

	transferred := fmt.Sprintf("%d%% transferred", percent)
	if size > 0 {
		transferred = fmt.Sprintf("%d%% of %s transferred", percent, helper.FormatBytes(size))
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render("Uploading " + styles.Trunc(filename, 38)))
	content.WriteString("\n\n" + bar)
	content.WriteString("\n\n" + styles.MutedStyle.Render(transferred))

	box := styles.DialogBox.Width(dialogWidth).Render(content.String())
	return centerDialog(box, screenWidth, screenHeight)
}

// SummaryDialog shows the result of a completed ingestion until dismissed.
func SummaryDialog(summary models.IngestSummary, screenWidth, screenHeight int) string {
	dialogWidth := 48
	if dialogWidth > screenWidth-4 {
		dialogWidth = screenWidth - 4
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render("Ingestion Complete") + "\n\n")
	content.WriteString(fmt.Sprintf("%s %d assets processed\n\n",
		styles.SuccessStyle.Render(styles.IconSuccess), summary.Total))
	content.WriteString("  " + styles.SuccessStyle.Render(styles.Pad("Healthy", 10)) +
		fmt.Sprintf("%d\n", summary.Healthy))
	content.WriteString("  " + styles.WarningStyle.Render(styles.Pad("Warning", 10)) +
		fmt.Sprintf("%d\n", summary.Warning))
	content.WriteString("  " + styles.ErrorStyle.Render(styles.Pad("Critical", 10)) +
		fmt.Sprintf("%d\n\n", summary.Critical))
	content.WriteString(styles.SubtleStyle.Render("press enter or esc to dismiss"))

	box := styles.DialogBox.Width(dialogWidth).Render(content.String())
	return centerDialog(box, screenWidth, screenHeight)
}

// PromptDialog is a single-line text prompt, used for the upload file path.
func PromptDialog(title, value, hint string, screenWidth, screenHeight int) string {
	dialogWidth := 64
	if dialogWidth > screenWidth-4 {
		dialogWidth = screenWidth - 4
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(title) + "\n\n")
	content.WriteString(styles.InputBox.Width(dialogWidth - 8).Render(value+styles.PrimaryStyle.Render("▌")) + "\n")
	if hint != "" {
		content.WriteString("\n" + styles.SubtleStyle.Render(hint))
	}

	box := styles.DialogBox.Width(dialogWidth).Render(content.String())
	return centerDialog(box, screenWidth, screenHeight)
}
