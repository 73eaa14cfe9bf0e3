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
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetsense/fleetsense/internal/client"
	"github.com/fleetsense/fleetsense/internal/config"
	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/pkg/logger"
)

func Run(store *fleet.Store, ing *fleet.Ingestion, cl *client.Client, cfg *config.Config) error {
	f, err := tea.LogToFile("fleetsense.log", "debug")
	if err != nil {
		return fmt.Errorf("fatal: could not open log file: %w", err)
	}
	defer f.Close()

	// Nothing may write to the terminal while the altscreen is up; both
	// the stdlib logger and ours go to the file for the session.
	log.SetOutput(f)
	logger.SetOutput(f)

	model := NewModel(store, ing, cl, cfg)
	p := tea.NewProgram(&model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	return nil
}
