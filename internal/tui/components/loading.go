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
	"github.com/fleetsense/fleetsense/internal/tui/styles"
)

func Loading(frame int, message string) string {
	spinner := styles.Spinner(frame)
	if message != "" {
		return "  " + spinner + "  " + styles.MutedStyle.Render(message)
	}
	return "  " + spinner
}

func LoadingInline(frame int) string {
	return styles.Spinner(frame)
}
