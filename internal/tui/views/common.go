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

import "github.com/fleetsense/fleetsense/internal/models"

// SnapshotMsg delivers a refreshed fleet snapshot to the overview.
type SnapshotMsg struct {
	Snapshot models.Snapshot
}

// AssetSelectedMsg reports a successful detail fetch; the navigator
// reacts by entering the detail view.
type AssetSelectedMsg struct {
	Asset models.Asset
}

type SpinnerTickMsg struct{}
