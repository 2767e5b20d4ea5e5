package surface

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemBrowser opens URLs with the desktop's default browser.
type SystemBrowser struct{}

func (SystemBrowser) Navigate(url string) error {
	return OpenBrowser(url)
}

func OpenBrowser(url string) error {
	var err error

	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	return err
}
