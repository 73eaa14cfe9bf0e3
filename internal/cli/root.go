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

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetsense/fleetsense/internal/client"
	"github.com/fleetsense/fleetsense/internal/config"
	"github.com/fleetsense/fleetsense/internal/fleet"
	"github.com/fleetsense/fleetsense/internal/server"
	"github.com/fleetsense/fleetsense/internal/tui"
	"github.com/fleetsense/fleetsense/pkg/helper"
	"github.com/fleetsense/fleetsense/pkg/logger"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fleetsense",
	Short: "FleetSense - Predictive Maintenance Dashboard",
	Long:  `FleetSense is a terminal dashboard for asset fleet health and failure prediction.`,
	Run:   runDashboard,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the embedded asset service",
	Long:  `Runs a self-contained asset service implementing the upload, asset, and report endpoints the dashboard consumes.`,
	Run:   runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	if cfgPath == "" {
		cfgPath = os.Getenv("FLEETSENSE_CONFIG")
	}
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath
	}

	if helper.Exists(cfgPath) {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Warning: Failed to load config: %v\n", err)
		}
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log.Path, cfg.Log.Level); err != nil {
		fmt.Printf("Warning: Failed to initialize logging: %v\n", err)
	}
}

func runDashboard(cmd *cobra.Command, args []string) {
	cl := client.New(cfg.Service.URL, time.Duration(cfg.Service.TimeoutSeconds)*time.Second)
	store := fleet.NewStore(cl)
	ing := fleet.NewIngestion(store, cl)

	if err := tui.Run(store, ing, cl, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	srv := server.NewServer(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Start(); err != nil {
		fmt.Printf("Server error: %v\n", err)
		os.Exit(1)
	}
}
