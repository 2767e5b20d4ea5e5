package utils

import (
	"io"
	"strings"

	"github.com/josephspurrier/goversioninfo"
	log "github.com/sirupsen/logrus"
)

// SetupLogging points the standard logrus logger at out. Unknown levels fall
// back to info.
func SetupLogging(out io.Writer, level string) {
	log.SetOutput(out)
	parsed, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true, PadLevelText: true})
}

func Version() string {
	info := VersionInfo()
	return info.StringFileInfo.ProductVersion
}

func VersionInfo() goversioninfo.VersionInfo {
	return versionInfo
}
