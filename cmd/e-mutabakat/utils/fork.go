package utils

import (
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// ForkExec starts a new instance of the running executable with the same
// arguments, used to come back up after an in-place update.
func ForkExec() error {
	argv0, err := lookPath()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	p, err := os.StartProcess(argv0, os.Args, &os.ProcAttr{
		Dir:   wd,
		Env:   os.Environ(),
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
		Sys:   sysProcAttr(),
	})
	if err != nil {
		return err
	}
	log.WithField("pid", p.Pid).Info("Restarted after update")
	return p.Release()
}

func lookPath() (string, error) {
	argv0, err := exec.LookPath(os.Args[0])
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(argv0); err != nil {
		return "", err
	}
	return argv0, nil
}
