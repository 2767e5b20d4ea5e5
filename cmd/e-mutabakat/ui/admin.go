//go:build windows

package ui

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

// Drag and drop from Explorer is blocked by UIPI when the window runs
// elevated.
func runningWithAdminPrivileges() bool {
	var sid *windows.SID

	// See https://docs.microsoft.com/en-us/windows/desktop/api/securitybaseapi/nf-securitybaseapi-checktokenmembership
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		log.Errorf("SID Error: %s", err)
		return false
	}
	defer windows.FreeSid(sid)

	token := windows.Token(0)
	isAdmin, _ := token.IsMember(sid)
	return token.IsElevated() || isAdmin
}
