// Package main is the entry point for the OBJ scene viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OBJ Scene Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if len(cfg.Assets.Models) == 0 {
		path, err := pickModel()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Error("file dialog failed", zap.Error(err))
				os.Exit(1)
			}
			logger.Info("no model selected")
			return
		}
		cfg.Assets.Models = []string{path}
	}

	v, err := NewViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.Run()
	logger.Info("viewer closed normally")
}

// pickModel asks for an OBJ file with a native dialog.
func pickModel() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
}
