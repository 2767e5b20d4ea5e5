//go:build !windows

package main

import (
	"errors"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/config"
)

const guiAvailable = false

var errNoGUI = errors.New("the desktop window is only available on Windows")

func runGUI(*config.AppConfig) error {
	return errNoGUI
}
