package utils

import "github.com/josephspurrier/goversioninfo"

// Regenerated by `go generate` from _res/versioninfo.json on release builds.
var versionInfo = goversioninfo.VersionInfo{
	StringFileInfo: goversioninfo.StringFileInfo{
		CompanyName:      "e-Mutabakat",
		FileDescription:  "e-Mutabakat Pro Client",
		InternalName:     "e-mutabakat",
		OriginalFilename: "e-mutabakat.exe",
		ProductName:      "e-Mutabakat Pro",
		ProductVersion:   "develop",
	},
}
