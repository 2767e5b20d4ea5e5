package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/sirupsen/logrus"
)

const repo = "e-mutabakat/e-mutabakat-client"

var errDevelopBuild = errors.New("development builds are not updated")

func DoUpdate(latest *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}
	logrus.Println("Successfully updated to version", latest.Version)
	return nil
}

// CheckUpdate reports the latest release and whether the running binary is
// already at or beyond it.
func CheckUpdate() (*selfupdate.Release, bool) {
	latest, upToDate, err := detectUpdate(Version())
	if err != nil {
		if !errors.Is(err, errDevelopBuild) {
			logrus.Println("Error occurred while detecting version:", err)
		}
		return nil, true
	}
	return latest, upToDate
}

func detectUpdate(version string) (*selfupdate.Release, bool, error) {
	if version == "develop" || version == "snapshot" {
		return nil, true, errDevelopBuild
	}
	v, err := semver.Parse(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, true, fmt.Errorf("invalid version %q: %w", version, err)
	}
	latest, found, err := selfupdate.DetectLatest(repo)
	if err != nil {
		return nil, true, err
	}

	if !found || latest.Version.LTE(v) {
		logrus.Println("Current version is the latest")
		return nil, true, nil
	}
	return latest, false, nil
}
