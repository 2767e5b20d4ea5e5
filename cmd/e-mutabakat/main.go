//go:generate goversioninfo -gofile=utils/versioninfo.go -gofilepackage=utils ./_res/versioninfo.json

package main

import (
	"os"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	log "github.com/sirupsen/logrus"
)

func main() {
	utils.SetupLogging(os.Stderr, "info")

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
