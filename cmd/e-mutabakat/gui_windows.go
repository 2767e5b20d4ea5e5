//go:build windows

package main

import (
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/config"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/ui"
	log "github.com/sirupsen/logrus"
)

const guiAvailable = true

func runGUI(cfg *config.AppConfig) error {
	log.Info("Starting")
	defer log.Info("Bye")
	return ui.StartUI(cfg)
}
