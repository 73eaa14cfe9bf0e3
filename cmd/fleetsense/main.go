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
package main

import (
	"fmt"
	"os"

	"github.com/fleetsense/fleetsense/internal/cli"
	"github.com/fleetsense/fleetsense/pkg/logger"
)

func main() {
	if err := logger.Init("", "info"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		logger.Error("Fatal error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
